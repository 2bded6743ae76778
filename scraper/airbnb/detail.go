package airbnb

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"airbnb-listings/models"
)

// ParseListingDetail reads the policy number, place type and nightly rate
// from a listing's detail page.
func ParseListingDetail(doc *goquery.Document, sel Selectors) (models.ListingDetail, error) {
	root := doc.Selection

	policyItem, err := findFirst(root, sel.PolicyItem)
	if err != nil {
		return models.ListingDetail{}, fmt.Errorf("policy: %w", err)
	}
	policyText, err := findFirst(policyItem, sel.PolicyText)
	if err != nil {
		return models.ListingDetail{}, fmt.Errorf("policy: %w", err)
	}

	subtitle, err := findFirst(root, sel.Subtitle)
	if err != nil {
		return models.ListingDetail{}, fmt.Errorf("subtitle: %w", err)
	}

	priceBlock, err := findFirst(root, sel.PriceBlock)
	if err != nil {
		return models.ListingDetail{}, fmt.Errorf("price: %w", err)
	}
	price, err := findFirst(priceBlock, sel.Price)
	if err != nil {
		return models.ListingDetail{}, fmt.Errorf("price: %w", err)
	}
	rate, err := ParsePrice(price.Text())
	if err != nil {
		return models.ListingDetail{}, err
	}

	return models.ListingDetail{
		PolicyNumber: ClassifyPolicy(policyText.Text()),
		PlaceType:    ClassifyPlaceType(subtitle.Text()),
		NightlyRate:  rate,
	}, nil
}
