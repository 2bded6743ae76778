package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"airbnb-listings/models"
	"airbnb-listings/utils"
)

const mostReviewedLimit = 5

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(records []models.ListingRecord) *models.InsightReport {
	report := &models.InsightReport{
		ByPlaceType:    make(map[string]int),
		ByPolicyStatus: make(map[string]int),
	}

	if len(records) == 0 {
		return report
	}

	report.TotalListings = len(records)
	report.InvalidPolicies = len(CheckPolicyNumbers(records))

	total := 0
	report.MinPrice = records[0].NightlyRate
	report.MaxPrice = records[0].NightlyRate
	report.MostExpensive = &records[0]

	for i := range records {
		r := &records[i]
		report.ByPlaceType[r.PlaceType]++
		report.ByPolicyStatus[policyStatus(r.PolicyNumber)]++

		total += r.NightlyRate
		if r.NightlyRate < report.MinPrice {
			report.MinPrice = r.NightlyRate
		}
		if r.NightlyRate > report.MaxPrice {
			report.MaxPrice = r.NightlyRate
			report.MostExpensive = r
		}
	}
	report.AveragePrice = round2(float64(total) / float64(len(records)))

	reviewed := make([]models.ListingRecord, 0, len(records))
	for _, r := range records {
		if r.ReviewCount > 0 {
			reviewed = append(reviewed, r)
		}
	}
	sort.SliceStable(reviewed, func(i, j int) bool {
		return reviewed[i].ReviewCount > reviewed[j].ReviewCount
	})
	if len(reviewed) > mostReviewedLimit {
		reviewed = reviewed[:mostReviewedLimit]
	}
	report.MostReviewed = reviewed

	s.logger.Debug("[insights] %d records, %d invalid policy numbers",
		report.TotalListings, report.InvalidPolicies)
	return report
}

// policyStatus groups formatted license numbers under a single label.
func policyStatus(policy string) string {
	switch policy {
	case models.PolicyPending, models.PolicyExempt, models.PolicyInvalid:
		return policy
	}
	return "Licensed"
}

func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 LISTING INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Total listings          : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Fprintf(w, "  Invalid policy numbers  : \033[1m%d\033[0m\n", r.InvalidPolicies)
	fmt.Fprintln(w)

	// Price Stats
	fmt.Fprintf(w, "\033[1;33m  Nightly Rate\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.TotalListings > 0 {
		fmt.Fprintf(w, "  Average : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Fprintf(w, "  Minimum : \033[1;32m$%d\033[0m\n", r.MinPrice)
		fmt.Fprintf(w, "  Maximum : \033[1;32m$%d\033[0m\n", r.MaxPrice)
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	if r.MostExpensive != nil {
		fmt.Fprintf(w, "\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s (%s)\n", truncate(r.MostExpensive.Title, 50), r.MostExpensive.ListingID)
		fmt.Fprintf(w, "  Price : \033[1;31m$%d/night\033[0m\n", r.MostExpensive.NightlyRate)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Most Reviewed Listings\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.MostReviewed) == 0 {
		fmt.Fprintf(w, "  No reviewed listings found\n")
	} else {
		for i, l := range r.MostReviewed {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%d reviews\033[0m\n",
				i+1, truncate(l.Title, 38), l.ReviewCount)
		}
	}
	fmt.Fprintln(w)

	printCounts(w, "Listings by Place Type", thin, r.ByPlaceType)
	printCounts(w, "Listings by Policy Status", thin, r.ByPolicyStatus)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func printCounts(w io.Writer, heading, thin string, counts map[string]int) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", heading)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(counts) == 0 {
		fmt.Fprintf(w, "  No data\n")
		fmt.Fprintln(w)
		return
	}

	type labelCount struct {
		label string
		count int
	}
	var rows []labelCount
	for label, n := range counts {
		rows = append(rows, labelCount{label, n})
	}
	// Sort by count descending, label ascending for stable output
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].label < rows[j].label
	})
	for _, row := range rows {
		bar := strings.Repeat("█", row.count)
		fmt.Fprintf(w, "  %-20s %s (%d)\n", row.label, bar, row.count)
	}
	fmt.Fprintln(w)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
