package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"SEARCH_RESULTS_PATH", "HTML_DIR", "CSV_OUTPUT_PATH",
		"RENDER_WITH_BROWSER", "POSTGRES_ENABLED", "SHOW_INSIGHTS", "MAX_RETRIES",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "html_files/search_results.html", cfg.SearchResultsPath)
	assert.Equal(t, "html_files", cfg.HTMLDir)
	assert.Equal(t, "airbnb_dataset.csv", cfg.CSVOutputPath)
	assert.False(t, cfg.RenderWithBrowser)
	assert.False(t, cfg.PostgresEnabled)
	assert.True(t, cfg.ShowInsights)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTML_DIR", "fixtures")
	t.Setenv("POSTGRES_ENABLED", "true")
	t.Setenv("SHOW_INSIGHTS", "0")
	t.Setenv("RENDER_TIMEOUT_SEC", "5")

	cfg := FromEnv()

	assert.Equal(t, "fixtures", cfg.HTMLDir)
	assert.True(t, cfg.PostgresEnabled)
	assert.False(t, cfg.ShowInsights)
	assert.Equal(t, 5, cfg.RenderTimeoutSec)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_RETRIES", "many")
	t.Setenv("RENDER_WITH_BROWSER", "sometimes")

	cfg := FromEnv()

	assert.Equal(t, 3, cfg.MaxRetries)
	assert.False(t, cfg.RenderWithBrowser)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "listings", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=listings sslmode=disable", cfg.DSN())
}
