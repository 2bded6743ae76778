package services

import (
	"fmt"

	"airbnb-listings/models"
	"airbnb-listings/utils"
)

// ListingExtractor reads listings from the saved search results page and
// their detail pages.
type ListingExtractor interface {
	SearchResults(path string) ([]models.RawListing, error)
	ListingDetail(listingID string) (models.ListingDetail, error)
}

// DatabaseBuilder joins search results with their detail pages.
type DatabaseBuilder struct {
	extractor ListingExtractor
	logger    *utils.Logger
}

// NewDatabaseBuilder creates a DatabaseBuilder.
func NewDatabaseBuilder(extractor ListingExtractor, logger *utils.Logger) *DatabaseBuilder {
	return &DatabaseBuilder{extractor: extractor, logger: logger}
}

// Build returns one record per search result, in search result order. Any
// detail page that cannot be read or parsed aborts the whole build.
func (b *DatabaseBuilder) Build(searchResultsPath string) ([]models.ListingRecord, error) {
	listings, err := b.extractor.SearchResults(searchResultsPath)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	seen := utils.NewIDSet()
	records := make([]models.ListingRecord, 0, len(listings))

	for _, l := range listings {
		if seen.Contains(l.ListingID) {
			b.logger.Warn("[database] Listing %s appears more than once on the results page", l.ListingID)
		}
		seen.Add(l.ListingID)

		detail, err := b.extractor.ListingDetail(l.ListingID)
		if err != nil {
			return nil, fmt.Errorf("database: listing %s: %w", l.ListingID, err)
		}
		records = append(records, models.NewListingRecord(l, detail))
	}

	b.logger.Info("[database] Built %d records (%d unique listings)", len(records), seen.Size())
	return records, nil
}
