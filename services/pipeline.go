package services

import (
	"fmt"
	"io"

	"airbnb-listings/config"
	"airbnb-listings/models"
	"airbnb-listings/storage"
	"airbnb-listings/utils"
)

// Result is everything one pipeline run produced.
type Result struct {
	Records         []models.ListingRecord
	InvalidPolicies []string
	Report          *models.InsightReport
}

// Pipeline runs build, validation, export and reporting over one saved
// search results page.
type Pipeline struct {
	cfg      *config.Config
	logger   *utils.Logger
	builder  *DatabaseBuilder
	insights *InsightService
	sinks    []storage.ListingWriter
	out      io.Writer
}

// NewPipeline creates a Pipeline. The insight report is printed to out.
func NewPipeline(cfg *config.Config, extractor ListingExtractor, logger *utils.Logger, out io.Writer) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		logger:   logger,
		builder:  NewDatabaseBuilder(extractor, logger),
		insights: NewInsightService(logger),
		out:      out,
	}
}

// AddSink registers a storage backend written after the CSV export. The
// caller owns the sink and closes it.
func (p *Pipeline) AddSink(w storage.ListingWriter) {
	p.sinks = append(p.sinks, w)
}

// Execute runs the complete pipeline. Nothing is exported unless every
// listing was extracted.
func (p *Pipeline) Execute() (*Result, error) {
	// Step 1: Build record set
	records, err := p.builder.Build(p.cfg.SearchResultsPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	// Step 2: Validate policy numbers
	invalid := CheckPolicyNumbers(records)
	if len(invalid) > 0 {
		p.logger.Warn("[pipeline] %d listings have invalid policy numbers: %v", len(invalid), invalid)
	} else {
		p.logger.Info("[pipeline] All policy numbers are valid, pending or exempt")
	}

	// Step 3: Export CSV
	if err := storage.ExportCSV(records, p.cfg.CSVOutputPath); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	p.logger.Info("[pipeline] Exported %d records to %s", len(records), p.cfg.CSVOutputPath)

	// Step 4: Extra storage backends. A backend that can be read back must
	// hold exactly the exported set; insights are then drawn from it.
	insightRecords := records
	for _, sink := range p.sinks {
		if err := sink.Write(records); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		reader, ok := sink.(storage.ListingReader)
		if !ok {
			continue
		}
		stored, err := reader.FetchAll()
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		if len(stored) != len(records) {
			return nil, fmt.Errorf("pipeline: storage holds %d records, exported %d", len(stored), len(records))
		}
		p.logger.Info("[pipeline] Read back %d stored records", len(stored))
		insightRecords = stored
	}

	// Step 5: Insights
	report := p.insights.Generate(insightRecords)
	if p.cfg.ShowInsights && p.out != nil {
		p.insights.Print(p.out, report)
	}

	return &Result{
		Records:         records,
		InvalidPolicies: invalid,
		Report:          report,
	}, nil
}
