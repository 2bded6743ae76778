package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"airbnb-listings/models"
)

// Header is the exported column order.
var Header = []string{
	"Listing Title", "Number of Reviews", "Listing ID", "Policy Number", "Place Type", "Nightly Rate",
}

// Ensure CSVWriter implements ListingWriter at compile time.
var _ ListingWriter = (*CSVWriter)(nil)

// CSVWriter exports the record set sorted by nightly rate.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write sorts the records by nightly rate (ties keep their input order) and
// writes one row per record. The caller's slice is left untouched.
func (c *CSVWriter) Write(records []models.ListingRecord) error {
	for _, r := range SortByNightlyRate(records) {
		if err := c.writer.Write(row(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}

// ExportCSV writes records to path in one call.
func ExportCSV(records []models.ListingRecord, path string) error {
	w, err := NewCSVWriter(path)
	if err != nil {
		return err
	}
	if err := w.Write(records); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// SortByNightlyRate returns a copy of records in ascending nightly rate order.
// The sort is stable.
func SortByNightlyRate(records []models.ListingRecord) []models.ListingRecord {
	sorted := make([]models.ListingRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].NightlyRate < sorted[j].NightlyRate
	})
	return sorted
}

func row(r models.ListingRecord) []string {
	return []string{
		r.Title,
		strconv.Itoa(r.ReviewCount),
		r.ListingID,
		r.PolicyNumber,
		r.PlaceType,
		strconv.Itoa(r.NightlyRate),
	}
}
