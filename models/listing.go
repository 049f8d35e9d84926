package models

// NotAvailable marks a listing field whose source element was missing.
const NotAvailable = "N/A"

// Listing is one property card as rendered on a results page. Price and
// SquareFootage are kept as the site prints them.
type Listing struct {
	Price         string
	SquareFootage string
	Street        string
	City          string
	Province      string
	Link          string
}

// PageTask is one results page to open and scrape.
type PageTask struct {
	URL        string
	PageNumber int
}

// PageResult is the outcome of scraping one page. Error is set when the
// page could not be extracted; Listings is then empty.
type PageResult struct {
	Listings   []Listing
	Error      error
	PageNumber int
}

func (r PageResult) Failed() bool {
	return r.Error != nil
}
