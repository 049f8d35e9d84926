package realtor

import (
	"errors"
	"realtor-scraper/config"
	"realtor-scraper/models"
	"testing"
)

func newExtractor() *DocumentExtractor {
	return NewDocumentExtractor(config.DefaultLocators(), "https://www.realtor.ca/")
}

func TestListings_Fields(t *testing.T) {
	page := resultsPage("",
		card{href: "/real-estate/1/123-main-st", price: " $650,000 ", address: "123 Main St, Springfield, BC", sqft: "2,100 sqft"},
	)

	got, err := newExtractor().Listings(page)
	if err != nil {
		t.Fatalf("Listings failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(got))
	}

	want := models.Listing{
		Price:         "$650,000",
		SquareFootage: "2,100 sqft",
		Street:        "123 Main St",
		City:          "Springfield",
		Province:      "BC",
		Link:          "https://www.realtor.ca/real-estate/1/123-main-st",
	}
	if got[0] != want {
		t.Errorf("listing = %+v, want %+v", got[0], want)
	}
}

func TestListings_DOMOrder(t *testing.T) {
	page := resultsPage("",
		card{href: "/a", price: "$1", address: "1 A St, X, BC", sqft: "1"},
		card{href: "/b", price: "$2", address: "2 B St, Y, BC", sqft: "2"},
		card{href: "/c", price: "$3", address: "3 C St, Z, BC", sqft: "3"},
	)

	got, err := newExtractor().Listings(page)
	if err != nil {
		t.Fatalf("Listings failed: %v", err)
	}

	wantStreets := []string{"1 A St", "2 B St", "3 C St"}
	if len(got) != len(wantStreets) {
		t.Fatalf("expected %d listings, got %d", len(wantStreets), len(got))
	}
	for i, w := range wantStreets {
		if got[i].Street != w {
			t.Errorf("listing %d street = %q, want %q", i, got[i].Street, w)
		}
	}
}

func TestListings_MissingAddressExcluded(t *testing.T) {
	page := resultsPage("",
		card{href: "/a", price: "$700,000", sqft: "3,000 sqft", noAddress: true},
		card{href: "/b", price: "$600,000", address: "9 Elm St, Hope, BC", sqft: "1,900 sqft"},
	)

	got, err := newExtractor().Listings(page)
	if err != nil {
		t.Fatalf("Listings failed: %v", err)
	}
	if len(got) != 1 || got[0].Street != "9 Elm St" {
		t.Errorf("expected only the addressed listing, got %+v", got)
	}
}

func TestListings_MissingFieldsAreNotAvailable(t *testing.T) {
	page := resultsPage("",
		card{price: "$600,000", address: "9 Elm St", noHref: true, noSqft: true},
	)

	got, err := newExtractor().Listings(page)
	if err != nil {
		t.Fatalf("Listings failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(got))
	}

	l := got[0]
	if l.Link != models.NotAvailable {
		t.Errorf("Link = %q, want N/A", l.Link)
	}
	if l.SquareFootage != models.NotAvailable {
		t.Errorf("SquareFootage = %q, want N/A", l.SquareFootage)
	}
	if l.City != models.NotAvailable || l.Province != models.NotAvailable {
		t.Errorf("City/Province = %q/%q, want N/A", l.City, l.Province)
	}
}

func TestListings_NoContainers(t *testing.T) {
	got, err := newExtractor().Listings(resultsPage("3"))
	if err != nil {
		t.Fatalf("Listings failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		want    int
		wantErr bool
	}{
		{"indicator", resultsPage("12"), 12, false},
		{"indicator with padding", resultsPage("  7 "), 7, false},
		{"leading integer", resultsPage("4 pages"), 4, false},
		{"missing indicator", resultsPage(""), 1, false},
		{"not a number", resultsPage("of many"), 1, true},
		{"zero", resultsPage("0"), 1, true},
		{"negative", resultsPage("-3"), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newExtractor().TotalPages(tt.page)
			if got != tt.want {
				t.Errorf("TotalPages() = %d, want %d", got, tt.want)
			}
			if tt.wantErr != errors.Is(err, ErrBadPageTotal) {
				t.Errorf("TotalPages() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		in                     string
		street, city, province string
	}{
		{"123 Main St, Springfield, BC", "123 Main St", "Springfield", "BC"},
		{"  123 Main St ,  Springfield , BC  ", "123 Main St", "Springfield", "BC"},
		{"123 Main St, Springfield", "123 Main St", "Springfield", models.NotAvailable},
		{"123 Main St", "123 Main St", models.NotAvailable, models.NotAvailable},
		{"", models.NotAvailable, models.NotAvailable, models.NotAvailable},
		{"1 A St, Hope, BC, V0X 1L0", "1 A St", "Hope", "BC"},
		{"1 A St,Hope, BC", "1 A St,Hope", "BC", models.NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			street, city, province := SplitAddress(tt.in)
			if street != tt.street || city != tt.city || province != tt.province {
				t.Errorf("SplitAddress(%q) = %q, %q, %q; want %q, %q, %q",
					tt.in, street, city, province, tt.street, tt.city, tt.province)
			}
		})
	}
}

func TestSplitAddress_RoundTrip(t *testing.T) {
	inputs := []string{
		"123 Main St, Springfield, BC",
		"Unit 4 - 5 Fraser Hwy, Langley, British Columbia",
		"33 King Rd, Abbotsford, BC",
	}
	for _, in := range inputs {
		street, city, province := SplitAddress(in)
		s2, c2, p2 := SplitAddress(street + ", " + city + ", " + province)
		if s2 != street || c2 != city || p2 != province {
			t.Errorf("round trip of %q changed: %q, %q, %q", in, s2, c2, p2)
		}
	}
}
