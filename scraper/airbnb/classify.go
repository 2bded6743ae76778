package airbnb

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"airbnb-listings/models"
)

var (
	// ErrNodeNotFound is returned when a structural node or attribute the
	// extractors rely on is absent.
	ErrNodeNotFound = errors.New("node not found")
	// ErrNoDigits is returned when an id or price text carries no digit run.
	ErrNoDigits = errors.New("no digits found")
)

var (
	// listingIDRegexp captures the trailing digit run of a title element id ("title_1944564")
	listingIDRegexp = regexp.MustCompile(`(\d+)\s*$`)
	// reviewCountRegexp captures "422" in "4.98 out of 5 average rating, 422 reviews"
	reviewCountRegexp = regexp.MustCompile(`\W\s(\d+)`)
	// priceRegexp captures the first digit run of a price label
	priceRegexp = regexp.MustCompile(`\d+`)
)

func missingNode(s Selector) error {
	return fmt.Errorf("%s: %w", s, ErrNodeNotFound)
}

func missingAttr(s Selector, attr string) error {
	return fmt.Errorf("%s[%s]: %w", s, attr, ErrNodeNotFound)
}

// ParseListingID extracts the listing id from a title element's id attribute.
// The id stays a string so leading zeros are preserved.
func ParseListingID(attr string) (string, error) {
	match := listingIDRegexp.FindStringSubmatch(attr)
	if len(match) < 2 {
		return "", fmt.Errorf("listing id %q: %w", attr, ErrNoDigits)
	}
	return match[1], nil
}

// ParseReviewCount extracts the review count from a rating label. Labels
// without a count ("New place to stay") yield 0.
func ParseReviewCount(label string) int {
	match := reviewCountRegexp.FindStringSubmatch(label)
	if len(match) < 2 {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

// ParsePrice returns the first digit run of a price label such as "$181 ".
// Thousands separators end the run, so "$1,310" reads as 1.
func ParsePrice(text string) (int, error) {
	match := priceRegexp.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("price %q: %w", text, ErrNoDigits)
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("price %q: %w", text, err)
	}
	return n, nil
}

// ClassifyPolicy maps the host-declared policy text to a license number,
// Pending, Exempt or Invalid.
func ClassifyPolicy(text string) string {
	text = strings.TrimSpace(text)
	normalised := strings.ToLower(text)

	switch {
	case strings.Contains(text, "STR"):
		return text
	case normalised == "pending":
		return models.PolicyPending
	case normalised == "exempt":
		return models.PolicyExempt
	default:
		return models.PolicyInvalid
	}
}

// ClassifyPlaceType maps a listing subtitle to a place type. Matching is
// case-insensitive and "private" wins over "shared".
func ClassifyPlaceType(subtitle string) string {
	normalised := strings.ToLower(subtitle)

	switch {
	case strings.Contains(normalised, "private"):
		return models.PlacePrivate
	case strings.Contains(normalised, "shared"):
		return models.PlaceShared
	default:
		return models.PlaceEntire
	}
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
