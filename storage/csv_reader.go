package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"airbnb-listings/models"
)

// ReadRecords parses a file written by CSVWriter back into records, in file
// order.
func ReadRecords(path string) ([]models.ListingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv: %q: missing header", path)
	}
	for i, name := range Header {
		if rows[0][i] != name {
			return nil, fmt.Errorf("csv: %q: header column %d is %q, want %q", path, i+1, rows[0][i], name)
		}
	}

	records := make([]models.ListingRecord, 0, len(rows)-1)
	for n, fields := range rows[1:] {
		rec, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("csv: %q line %d: %w", path, n+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(fields []string) (models.ListingRecord, error) {
	reviews, err := strconv.Atoi(fields[1])
	if err != nil {
		return models.ListingRecord{}, fmt.Errorf("number of reviews: %w", err)
	}
	rate, err := strconv.Atoi(fields[5])
	if err != nil {
		return models.ListingRecord{}, fmt.Errorf("nightly rate: %w", err)
	}

	return models.NewListingRecord(
		models.RawListing{Title: fields[0], ReviewCount: reviews, ListingID: fields[2]},
		models.ListingDetail{PolicyNumber: fields[3], PlaceType: fields[4], NightlyRate: rate},
	), nil
}
