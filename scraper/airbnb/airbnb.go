package airbnb

import (
	"fmt"
	"path/filepath"

	"airbnb-listings/config"
	"airbnb-listings/models"
	"airbnb-listings/utils"
)

// Extractor reads listings out of a saved search results page and the
// detail pages stored next to it.
type Extractor struct {
	source    DocumentSource
	selectors Selectors
	htmlDir   string
	logger    *utils.Logger
}

// New creates an Extractor that resolves detail pages under cfg.HTMLDir.
func New(cfg *config.Config, source DocumentSource, logger *utils.Logger) *Extractor {
	return &Extractor{
		source:    source,
		selectors: DefaultSelectors(),
		htmlDir:   cfg.HTMLDir,
		logger:    logger,
	}
}

// WithSelectors replaces the selector table, for pages saved with a different
// markup convention.
func (e *Extractor) WithSelectors(sel Selectors) *Extractor {
	e.selectors = sel
	return e
}

// SearchResults extracts every listing block on the results page at path.
func (e *Extractor) SearchResults(path string) ([]models.RawListing, error) {
	doc, err := e.source.Load(path)
	if err != nil {
		return nil, err
	}

	listings, err := ParseSearchResults(doc, e.selectors)
	if err != nil {
		return nil, fmt.Errorf("airbnb: search results %q: %w", path, err)
	}

	e.logger.Info("[airbnb] Extracted %d listings from %s", len(listings), path)
	return listings, nil
}

// ListingDetail extracts the classified detail for one listing id.
func (e *Extractor) ListingDetail(listingID string) (models.ListingDetail, error) {
	if !isDigits(listingID) {
		return models.ListingDetail{}, fmt.Errorf("airbnb: listing id %q: %w", listingID, ErrNoDigits)
	}

	path := DetailPath(e.htmlDir, listingID)
	doc, err := e.source.Load(path)
	if err != nil {
		return models.ListingDetail{}, err
	}

	detail, err := ParseListingDetail(doc, e.selectors)
	if err != nil {
		return models.ListingDetail{}, fmt.Errorf("airbnb: listing %s: %w", listingID, err)
	}

	e.logger.Debug("[airbnb] Listing %s: %s | %s | %d", listingID,
		detail.PolicyNumber, detail.PlaceType, detail.NightlyRate)
	return detail, nil
}

// DetailPath returns the saved detail page location for a listing id.
func DetailPath(dir, listingID string) string {
	return filepath.Join(dir, "listing_"+listingID+".html")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
