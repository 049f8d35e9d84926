package realtor

import (
	"errors"
	"math"
	"realtor-scraper/models"
	"strconv"
	"strings"
)

// SquareFeet strips everything but digits from a rendered area
// ("2,100 sqft" -> 2100). ok is false when no digits remain.
func SquareFeet(raw string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// FilterBySquareFeet keeps listings with a parseable area of at least min,
// preserving order.
func FilterBySquareFeet(listings []models.Listing, min int) []models.Listing {
	kept := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if sqft, ok := SquareFeet(l.SquareFootage); ok && sqft >= min {
			kept = append(kept, l)
		}
	}
	return kept
}
