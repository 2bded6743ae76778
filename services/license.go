package services

import (
	"regexp"

	"airbnb-listings/models"
)

var (
	// yearPolicyRegexp matches 20##-00####STR
	yearPolicyRegexp = regexp.MustCompile(`^20\d{2}-00\d{4}STR$`)
	// prefixPolicyRegexp matches STR-000####
	prefixPolicyRegexp = regexp.MustCompile(`^STR-000\d{4}$`)
)

// ValidPolicyNumber reports whether s is a license number in one of the two
// accepted formats.
func ValidPolicyNumber(s string) bool {
	return yearPolicyRegexp.MatchString(s) || prefixPolicyRegexp.MatchString(s)
}

// CheckPolicyNumbers returns the listing ids whose policy number is neither
// Pending, Exempt nor a valid license number, in record order.
func CheckPolicyNumbers(records []models.ListingRecord) []string {
	invalid := make([]string, 0)
	for _, r := range records {
		switch r.PolicyNumber {
		case models.PolicyPending, models.PolicyExempt:
			continue
		}
		if !ValidPolicyNumber(r.PolicyNumber) {
			invalid = append(invalid, r.ListingID)
		}
	}
	return invalid
}
