package airbnb

import "github.com/PuerkitoBio/goquery"

// Attributes read from matched elements.
const (
	titleIDAttr     = "id"
	ratingLabelAttr = "aria-label"
)

// Selector matches an element by tag name and, when Class is set, one of its
// classes.
type Selector struct {
	Tag   string
	Class string
}

// String renders the selector as a CSS selector understood by goquery.
func (s Selector) String() string {
	if s.Class == "" {
		return s.Tag
	}
	return s.Tag + "." + s.Class
}

// Selectors maps every field the extractors read to the element carrying it.
// Detail-page fields that live inside a container (policy text, price) are
// matched relative to that container.
type Selectors struct {
	// Search results page
	ListingBlock Selector
	Title        Selector
	Rating       Selector

	// Detail page
	PolicyItem Selector
	PolicyText Selector
	Subtitle   Selector
	PriceBlock Selector
	Price      Selector
}

// DefaultSelectors returns the class conventions used by the saved Airbnb pages.
func DefaultSelectors() Selectors {
	return Selectors{
		ListingBlock: Selector{Tag: "div", Class: "g1qv1ctd"},
		Title:        Selector{Tag: "div", Class: "t1jojoys"},
		Rating:       Selector{Tag: "span", Class: "t5eq1io"},

		PolicyItem: Selector{Tag: "li", Class: "f19phm7j"},
		PolicyText: Selector{Tag: "span"},
		Subtitle:   Selector{Tag: "h2", Class: "_14i3z6h"},
		PriceBlock: Selector{Tag: "div", Class: "_1jo4hgw"},
		Price:      Selector{Tag: "span", Class: "_tyxjp1"},
	}
}

// findFirst returns the first descendant of root matching s.
func findFirst(root *goquery.Selection, s Selector) (*goquery.Selection, error) {
	match := root.Find(s.String()).First()
	if match.Length() == 0 {
		return nil, missingNode(s)
	}
	return match, nil
}
