package airbnb

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"airbnb-listings/models"
)

// ParseSearchResults returns one RawListing per listing block, in document
// order. Duplicate blocks produce duplicate listings.
func ParseSearchResults(doc *goquery.Document, sel Selectors) ([]models.RawListing, error) {
	blocks := doc.Find(sel.ListingBlock.String())
	listings := make([]models.RawListing, 0, blocks.Length())

	var parseErr error
	blocks.EachWithBreak(func(i int, block *goquery.Selection) bool {
		listing, err := parseListingBlock(block, sel)
		if err != nil {
			parseErr = fmt.Errorf("listing block %d: %w", i, err)
			return false
		}
		listings = append(listings, listing)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return listings, nil
}

func parseListingBlock(block *goquery.Selection, sel Selectors) (models.RawListing, error) {
	title, err := findFirst(block, sel.Title)
	if err != nil {
		return models.RawListing{}, err
	}
	rawID, ok := title.Attr(titleIDAttr)
	if !ok {
		return models.RawListing{}, missingAttr(sel.Title, titleIDAttr)
	}
	id, err := ParseListingID(rawID)
	if err != nil {
		return models.RawListing{}, err
	}

	rating, err := findFirst(block, sel.Rating)
	if err != nil {
		return models.RawListing{}, err
	}
	label, ok := rating.Attr(ratingLabelAttr)
	if !ok {
		return models.RawListing{}, missingAttr(sel.Rating, ratingLabelAttr)
	}

	return models.RawListing{
		Title:       normaliseText(title.Text()),
		ReviewCount: ParseReviewCount(label),
		ListingID:   id,
	}, nil
}
