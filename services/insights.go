package services

import (
	"fmt"
	"io"
	"math"
	"realtor-scraper/config"
	"realtor-scraper/models"
	"realtor-scraper/scraper/realtor"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

type Report struct {
	TotalListings       int
	PricedListings      int
	AveragePrice        float64
	MinPrice            float64
	MaxPrice            float64
	AveragePricePerSqft float64
	MostExpensive       models.Listing
	ListingsByCity      map[string]int
}

// ParsePrice reads a rendered price such as "$650,000". ok is false for
// N/A and anything else that is not a plain amount.
func ParsePrice(raw string) (float64, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// GenerateReport computes market figures over the scraped listings.
func GenerateReport(listings []models.Listing) Report {
	report := Report{
		TotalListings:  len(listings),
		ListingsByCity: make(map[string]int),
	}

	var (
		priceSum    float64
		perSqftSum  float64
		perSqftSeen int
		maxPrice    = -1.0
		minPrice    = math.MaxFloat64
	)

	for _, l := range listings {
		report.ListingsByCity[normalizeCity(l.City)]++

		price, ok := ParsePrice(l.Price)
		if !ok {
			continue
		}
		report.PricedListings++
		priceSum += price

		if price > maxPrice {
			maxPrice = price
			report.MostExpensive = l
		}
		if price < minPrice {
			minPrice = price
		}

		if sqft, ok := realtor.SquareFeet(l.SquareFootage); ok && sqft > 0 {
			perSqftSum += price / float64(sqft)
			perSqftSeen++
		}
	}

	if report.PricedListings > 0 {
		report.AveragePrice = priceSum / float64(report.PricedListings)
		report.MinPrice = minPrice
		report.MaxPrice = maxPrice
	}
	if perSqftSeen > 0 {
		report.AveragePricePerSqft = perSqftSum / float64(perSqftSeen)
	}

	return report
}

// FilterListings keeps listings inside the shortlist window. An empty city
// list matches every city and a zero maximum is unbounded. Listings whose
// price or area cannot be parsed never match.
func FilterListings(listings []models.Listing, s config.Shortlist) []models.Listing {
	cities := make(map[string]bool, len(s.Cities))
	for _, c := range s.Cities {
		cities[strings.ToLower(strings.TrimSpace(c))] = true
	}

	var out []models.Listing
	for _, l := range listings {
		if len(cities) > 0 && !cities[strings.ToLower(l.City)] {
			continue
		}

		price, ok := ParsePrice(l.Price)
		if !ok || price < s.MinPrice || (s.MaxPrice > 0 && price > s.MaxPrice) {
			continue
		}

		sqft, ok := realtor.SquareFeet(l.SquareFootage)
		if !ok || sqft < s.MinSqft || (s.MaxSqft > 0 && sqft > s.MaxSqft) {
			continue
		}

		out = append(out, l)
	}
	return out
}

func PrintReport(w io.Writer, report Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "┌──────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│                    Real Estate Market Insights               │")
	fmt.Fprintln(w, "├───────────────────────────────┬──────────────────────────────┤")
	fmt.Fprintf(w, "│ %-29s │ %-28d │\n", "Listings Scraped", report.TotalListings)
	fmt.Fprintf(w, "│ %-29s │ %-28d │\n", "Listings With Price", report.PricedListings)
	fmt.Fprintf(w, "│ %-29s │ %-28.2f │\n", "Average Price", report.AveragePrice)
	fmt.Fprintf(w, "│ %-29s │ %-28.2f │\n", "Minimum Price", report.MinPrice)
	fmt.Fprintf(w, "│ %-29s │ %-28.2f │\n", "Maximum Price", report.MaxPrice)
	fmt.Fprintf(w, "│ %-29s │ %-28.2f │\n", "Average Price / sqft", report.AveragePricePerSqft)
	fmt.Fprintln(w, "└───────────────────────────────┴──────────────────────────────┘")

	if report.PricedListings > 0 {
		l := report.MostExpensive
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Most expensive: %s | %s, %s, %s\n", l.Price, l.Street, l.City, l.Province)
		fmt.Fprintf(w, "  %s\n", l.Link)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "┌──────────────────────────────────────────────┬───────────────┐")
	fmt.Fprintln(w, "│ Listings per City                            │ Count         │")
	fmt.Fprintln(w, "├──────────────────────────────────────────────┼───────────────┤")
	for _, city := range sortedCities(report.ListingsByCity) {
		fmt.Fprintf(w, "│ %s │ %-13d │\n", cell(city, 44), report.ListingsByCity[city])
	}
	fmt.Fprintln(w, "└──────────────────────────────────────────────┴───────────────┘")
}

// PrintShortlist prints the listings that fall inside the shortlist window.
func PrintShortlist(w io.Writer, listings []models.Listing) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Shortlist: %d listings\n", len(listings))
	if len(listings) == 0 {
		return
	}

	fmt.Fprintln(w, "┌─────┬──────────────────────────────────────────┬──────────────┬──────────────┐")
	fmt.Fprintln(w, "│ #   │ Address                                  │ Price        │ Area         │")
	fmt.Fprintln(w, "├─────┼──────────────────────────────────────────┼──────────────┼──────────────┤")
	for i, l := range listings {
		address := l.Street + ", " + l.City
		fmt.Fprintf(w, "│ %-3d │ %s │ %s │ %s │\n", i+1, cell(address, 40), cell(l.Price, 12), cell(l.SquareFootage, 12))
	}
	fmt.Fprintln(w, "└─────┴──────────────────────────────────────────┴──────────────┴──────────────┘")
}

func normalizeCity(city string) string {
	city = strings.TrimSpace(city)
	if city == "" || city == models.NotAvailable {
		return "Unknown"
	}
	return city
}

func sortedCities(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cell pads or truncates s to exactly width terminal columns.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}
