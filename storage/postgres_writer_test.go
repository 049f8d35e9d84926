package storage

import (
	"realtor-scraper/models"
	"testing"
)

func TestArchiveRow(t *testing.T) {
	l := sampleListing()
	l.Province = models.NotAvailable

	row := archiveRow("run-1", 4, l)
	if len(row) != 9 {
		t.Fatalf("archiveRow returned %d args, want 9", len(row))
	}

	if row[0] != "run-1" || row[1] != 4 {
		t.Errorf("run id / position = %v / %v", row[0], row[1])
	}
	if row[4] != 2100 {
		t.Errorf("square_feet = %v, want 2100", row[4])
	}
	if row[7] != nil {
		t.Errorf("N/A province should be NULL, got %v", row[7])
	}
	if row[8] != l.Link {
		t.Errorf("link = %v, want %s", row[8], l.Link)
	}
}

func TestArchiveRow_UnparseableArea(t *testing.T) {
	l := sampleListing()
	l.SquareFootage = models.NotAvailable

	row := archiveRow("run-1", 0, l)
	if row[3] != nil || row[4] != nil {
		t.Errorf("N/A area should be NULL, got %v / %v", row[3], row[4])
	}
}
