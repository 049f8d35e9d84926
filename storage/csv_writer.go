package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"realtor-scraper/models"
	"realtor-scraper/utils"
	"strings"
)

// Header is the fixed first row of every output file.
var Header = []string{"Price", "Square Footage", "Street", "City", "Province", "Link"}

// CSVWriter saves listings to <base>.csv, or <base>_<n>.csv when earlier
// runs already used that name. It never overwrites a file.
type CSVWriter struct {
	dir  string
	base string
}

func NewCSVWriter(dir, base string) *CSVWriter {
	return &CSVWriter{dir: dir, base: base}
}

func (w *CSVWriter) candidate(n int) string {
	if n == 0 {
		return filepath.Join(w.dir, w.base+".csv")
	}
	return filepath.Join(w.dir, fmt.Sprintf("%s_%d.csv", w.base, n))
}

// NextPath returns the first candidate name that does not exist yet.
func (w *CSVWriter) NextPath() (string, error) {
	for n := 0; ; n++ {
		path := w.candidate(n)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("check %s: %w", path, err)
		}
	}
}

// Write serialises listings into a new file and returns its path. The file
// is created with O_EXCL; if another writer takes the name between the scan
// and the create, the scan runs again.
func (w *CSVWriter) Write(listings []models.Listing) (string, error) {
	content := Format(listings)

	for {
		path, err := w.NextPath()
		if err != nil {
			return "", err
		}

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("could not create file: %w", err)
		}

		_, werr := file.WriteString(content)
		cerr := file.Close()
		if werr != nil {
			return "", fmt.Errorf("csv write error: %w", werr)
		}
		if cerr != nil {
			return "", fmt.Errorf("csv close error: %w", cerr)
		}

		utils.Success("Listings saved to %s (%d rows)", path, len(listings))
		return path, nil
	}
}

// Format renders the header and one row per listing. Every data value is
// wrapped in double quotes with embedded quotes doubled; rows are joined
// with "\n" and the last row has no terminator.
func Format(listings []models.Listing) string {
	rows := make([]string, 0, len(listings)+1)
	rows = append(rows, strings.Join(Header, ","))

	for _, l := range listings {
		fields := []string{l.Price, l.SquareFootage, l.Street, l.City, l.Province, l.Link}
		for i, f := range fields {
			fields[i] = quote(f)
		}
		rows = append(rows, strings.Join(fields, ","))
	}

	return strings.Join(rows, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
