package services

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-listings/config"
	"airbnb-listings/models"
	"airbnb-listings/scraper/airbnb"
	"airbnb-listings/storage"
	"airbnb-listings/utils"
)

const fixtureDir = "../testdata/html_files"

func fixtureConfig(t *testing.T, htmlDir string) *config.Config {
	t.Helper()
	return &config.Config{
		SearchResultsPath: filepath.Join(htmlDir, "search_results.html"),
		HTMLDir:           htmlDir,
		CSVOutputPath:     filepath.Join(t.TempDir(), "airbnb_dataset.csv"),
		ShowInsights:      true,
	}
}

func newFixturePipeline(cfg *config.Config, out *bytes.Buffer) *Pipeline {
	logger := utils.NewDiscardLogger()
	extractor := airbnb.New(cfg, airbnb.NewFileSource(), logger)
	return NewPipeline(cfg, extractor, logger, out)
}

// recordingSink keeps what it was asked to write.
type recordingSink struct {
	written []models.ListingRecord
	err     error
}

func (s *recordingSink) Write(records []models.ListingRecord) error {
	s.written = records
	return s.err
}

func (s *recordingSink) Close() error { return nil }

// storedSink is a recordingSink that can be read back. fetched overrides
// what FetchAll returns when set.
type storedSink struct {
	recordingSink
	fetched  []models.ListingRecord
	fetchErr error
}

func (s *storedSink) FetchAll() ([]models.ListingRecord, error) {
	if s.fetched != nil {
		return s.fetched, s.fetchErr
	}
	return s.written, s.fetchErr
}

func TestPipelineExecute(t *testing.T) {
	cfg := fixtureConfig(t, fixtureDir)
	var out bytes.Buffer
	p := newFixturePipeline(cfg, &out)
	sink := &recordingSink{}
	p.AddSink(sink)

	result, err := p.Execute()

	require.NoError(t, err)
	require.Len(t, result.Records, 6)
	assert.Equal(t, models.NewListingRecord(
		models.RawListing{Title: "Loft in Mission District", ReviewCount: 422, ListingID: "1944564"},
		models.ListingDetail{PolicyNumber: "2022-004088STR", PlaceType: models.PlaceEntire, NightlyRate: 181},
	), result.Records[0])
	assert.Equal(t, models.NewListingRecord(
		models.RawListing{Title: "Guest suite in Mission District", ReviewCount: 324, ListingID: "467507"},
		models.ListingDetail{PolicyNumber: "STR-0005349", PlaceType: models.PlaceEntire, NightlyRate: 165},
	), result.Records[3])
	assert.Equal(t, []string{"16204265"}, result.InvalidPolicies)
	assert.Equal(t, result.Records, sink.written)
	assert.Contains(t, out.String(), "LISTING INSIGHTS")

	exported, err := storage.ReadRecords(cfg.CSVOutputPath)
	require.NoError(t, err)
	require.Len(t, exported, 6)
	assert.Equal(t, "23672181", exported[0].ListingID)
	assert.Equal(t, "0042137", exported[1].ListingID)
	assert.Equal(t, "6092596", exported[5].ListingID)
}

func TestPipelineExecuteWithoutInsights(t *testing.T) {
	cfg := fixtureConfig(t, fixtureDir)
	cfg.ShowInsights = false
	var out bytes.Buffer

	result, err := newFixturePipeline(cfg, &out).Execute()

	require.NoError(t, err)
	assert.NotNil(t, result.Report)
	assert.Empty(t, out.String())
}

func TestPipelineAbortsWhenDetailPageMissing(t *testing.T) {
	dir := t.TempDir()
	search, err := os.ReadFile(filepath.Join(fixtureDir, "search_results.html"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "search_results.html"), search, 0644))

	cfg := fixtureConfig(t, dir)
	var out bytes.Buffer

	result, err := newFixturePipeline(cfg, &out).Execute()

	assert.Nil(t, result)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, statErr := os.Stat(cfg.CSVOutputPath)
	assert.ErrorIs(t, statErr, fs.ErrNotExist, "no partial export")
}

func TestPipelinePropagatesSinkError(t *testing.T) {
	cfg := fixtureConfig(t, fixtureDir)
	var out bytes.Buffer
	p := newFixturePipeline(cfg, &out)
	sentinel := errors.New("database unavailable")
	p.AddSink(&recordingSink{err: sentinel})

	_, err := p.Execute()

	assert.ErrorIs(t, err, sentinel)
}

func TestPipelineReadsBackStoredRecords(t *testing.T) {
	t.Run("insights come from the stored set", func(t *testing.T) {
		cfg := fixtureConfig(t, fixtureDir)
		cfg.ShowInsights = false
		var out bytes.Buffer
		p := newFixturePipeline(cfg, &out)
		stored := make([]models.ListingRecord, 6)
		for i := range stored {
			stored[i] = models.NewListingRecord(
				models.RawListing{Title: "Stored", ListingID: "1"},
				models.ListingDetail{PolicyNumber: models.PolicyExempt, PlaceType: models.PlaceEntire, NightlyRate: 500},
			)
		}
		p.AddSink(&storedSink{fetched: stored})

		result, err := p.Execute()

		require.NoError(t, err)
		assert.Equal(t, 6, result.Report.TotalListings)
		assert.Equal(t, 500, result.Report.MaxPrice)
		assert.Equal(t, 500, result.Report.MinPrice)
	})

	t.Run("round trip keeps the report", func(t *testing.T) {
		cfg := fixtureConfig(t, fixtureDir)
		var out bytes.Buffer
		p := newFixturePipeline(cfg, &out)
		sink := &storedSink{}
		p.AddSink(sink)

		result, err := p.Execute()

		require.NoError(t, err)
		assert.Equal(t, result.Records, sink.written)
		assert.Equal(t, 310, result.Report.MaxPrice)
	})

	t.Run("count mismatch fails the run", func(t *testing.T) {
		cfg := fixtureConfig(t, fixtureDir)
		var out bytes.Buffer
		p := newFixturePipeline(cfg, &out)
		p.AddSink(&storedSink{fetched: []models.ListingRecord{}})

		_, err := p.Execute()

		assert.ErrorContains(t, err, "storage holds 0 records, exported 6")
	})

	t.Run("fetch error fails the run", func(t *testing.T) {
		cfg := fixtureConfig(t, fixtureDir)
		var out bytes.Buffer
		p := newFixturePipeline(cfg, &out)
		sentinel := errors.New("query timed out")
		p.AddSink(&storedSink{fetchErr: sentinel})

		_, err := p.Execute()

		assert.ErrorIs(t, err, sentinel)
	})
}
