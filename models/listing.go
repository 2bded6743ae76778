package models

// Policy statuses assigned when the host-declared policy text is not a
// formatted license number.
const (
	PolicyPending = "Pending"
	PolicyExempt  = "Exempt"
	PolicyInvalid = "Invalid"
)

// Place types derived from the listing subtitle.
const (
	PlaceEntire  = "Entire Room"
	PlacePrivate = "Private Room"
	PlaceShared  = "Shared Room"
)

// RawListing is one listing block read from the search results page.
// ListingID is kept as text so leading zeros survive the join and the export.
type RawListing struct {
	Title       string
	ReviewCount int
	ListingID   string
}

// ListingDetail holds the classified attributes read from a listing's detail page.
type ListingDetail struct {
	PolicyNumber string
	PlaceType    string
	NightlyRate  int
}

// ListingRecord is a RawListing joined with its ListingDetail.
type ListingRecord struct {
	RawListing
	ListingDetail
}

// NewListingRecord joins a search result with the detail parsed for the same id.
func NewListingRecord(raw RawListing, detail ListingDetail) ListingRecord {
	return ListingRecord{RawListing: raw, ListingDetail: detail}
}

// InsightReport holds the computed analytics over the record set.
type InsightReport struct {
	TotalListings   int
	InvalidPolicies int
	AveragePrice    float64
	MinPrice        int
	MaxPrice        int
	MostExpensive   *ListingRecord
	MostReviewed    []ListingRecord
	ByPlaceType     map[string]int
	ByPolicyStatus  map[string]int
}
