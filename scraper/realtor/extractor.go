package realtor

import (
	"errors"
	"fmt"
	"realtor-scraper/config"
	"realtor-scraper/models"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrBadPageTotal reports a pagination indicator whose text is not a page count.
var ErrBadPageTotal = errors.New("pagination indicator is not a page count")

// FieldExtractor reads listing fields out of a rendered results page. It is
// the only part of the scraper that knows the site's markup.
type FieldExtractor interface {
	// TotalPages returns the number of result pages, never less than 1.
	TotalPages(html string) (int, error)

	// Listings returns the listings of one page in DOM order.
	Listings(html string) ([]models.Listing, error)
}

// DocumentExtractor implements FieldExtractor over a DOM snapshot using
// CSS locators.
type DocumentExtractor struct {
	locators config.Locators
	origin   string
}

func NewDocumentExtractor(locators config.Locators, origin string) *DocumentExtractor {
	return &DocumentExtractor{
		locators: locators,
		origin:   strings.TrimRight(origin, "/"),
	}
}

// TotalPages reads the pagination indicator. A missing indicator means a
// single page; an unreadable one also yields 1 together with ErrBadPageTotal.
func (e *DocumentExtractor) TotalPages(html string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 1, fmt.Errorf("parse page: %w", err)
	}

	indicator := doc.Find(e.locators.PageTotal).First()
	if indicator.Length() == 0 {
		return 1, nil
	}

	text := strings.TrimSpace(indicator.Text())
	n, ok := leadingInt(text)
	if !ok || n < 1 {
		return 1, fmt.Errorf("%w: %q", ErrBadPageTotal, text)
	}
	return n, nil
}

func (e *DocumentExtractor) Listings(html string) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	listings := []models.Listing{}
	doc.Find(e.locators.Container).Each(func(_ int, card *goquery.Selection) {
		if l, ok := e.listing(card); ok {
			listings = append(listings, l)
		}
	})
	return listings, nil
}

// listing extracts one card. Cards without an address element are dropped.
func (e *DocumentExtractor) listing(card *goquery.Selection) (models.Listing, bool) {
	address := card.Find(e.locators.Address).First()
	if address.Length() == 0 {
		return models.Listing{}, false
	}

	street, city, province := SplitAddress(address.Text())
	return models.Listing{
		Price:         text(card.Find(e.locators.Price)),
		SquareFootage: text(card.Find(e.locators.SquareFootage)),
		Street:        street,
		City:          city,
		Province:      province,
		Link:          e.link(card),
	}, true
}

func (e *DocumentExtractor) link(card *goquery.Selection) string {
	href, ok := card.Attr("href")
	if !ok || href == "" {
		return models.NotAvailable
	}
	return e.origin + href
}

// text returns the trimmed text of the first match, or NotAvailable.
func text(sel *goquery.Selection) string {
	first := sel.First()
	if first.Length() == 0 {
		return models.NotAvailable
	}
	return strings.TrimSpace(first.Text())
}

// SplitAddress splits "street, city, province". Missing or blank parts
// become NotAvailable; parts past the third are ignored.
func SplitAddress(full string) (street, city, province string) {
	parts := strings.Split(full, ", ")
	part := func(i int) string {
		if i >= len(parts) {
			return models.NotAvailable
		}
		if p := strings.TrimSpace(parts[i]); p != "" {
			return p
		}
		return models.NotAvailable
	}
	return part(0), part(1), part(2)
}

// leadingInt parses the integer prefix of s ("12 pages" -> 12).
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
