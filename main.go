package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"airbnb-listings/config"
	"airbnb-listings/scraper/airbnb"
	"airbnb-listings/services"
	"airbnb-listings/storage"
	"airbnb-listings/utils"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the command-line interface structure for Kong. Every flag
// defaults to the loaded configuration, so no arguments runs the full
// pipeline with the configured paths.
type CLI struct {
	Search   string `help:"Saved search results page." default:"${search}"`
	HTMLDir  string `name:"html-dir" help:"Directory holding listing_<id>.html detail pages." default:"${html_dir}"`
	Out      string `short:"o" help:"CSV output path." default:"${out}"`
	Render   bool   `help:"Render saved pages in headless Chrome before parsing." default:"${render}"`
	Postgres bool   `help:"Also store the record set in PostgreSQL." default:"${postgres}"`
	Insights bool   `help:"Print the insight report." default:"${insights}" negatable:""`
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg := config.Load()

	cli := &CLI{}
	exited := false
	parser, err := kong.New(cli,
		kong.Name("airbnb-listings"),
		kong.Description("Extract listings from saved Airbnb pages and export them sorted by nightly rate"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { exited = true }),
		kong.Vars{
			"search":   cfg.SearchResultsPath,
			"html_dir": cfg.HTMLDir,
			"out":      cfg.CSVOutputPath,
			"render":   strconv.FormatBool(cfg.RenderWithBrowser),
			"postgres": strconv.FormatBool(cfg.PostgresEnabled),
			"insights": strconv.FormatBool(cfg.ShowInsights),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// --help anywhere on the line prints usage and stops.
	if _, err := parser.Parse(args); err != nil {
		if exited {
			return nil
		}
		return err
	}
	if exited {
		return nil
	}

	cfg.SearchResultsPath = cli.Search
	cfg.HTMLDir = cli.HTMLDir
	cfg.CSVOutputPath = cli.Out
	cfg.RenderWithBrowser = cli.Render
	cfg.PostgresEnabled = cli.Postgres
	cfg.ShowInsights = cli.Insights

	logger := utils.NewLoggerTo(stdout, stderr)
	logger.Info("=== Airbnb listing extraction starting ===")
	logger.Info("Config | search: %s | detail pages: %s | output: %s",
		cfg.SearchResultsPath, cfg.HTMLDir, cfg.CSVOutputPath)

	var source airbnb.DocumentSource = airbnb.NewFileSource()
	if cfg.RenderWithBrowser {
		browser, err := airbnb.NewBrowserSource(cfg, logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return err
		}
		defer browser.Close()
		source = browser
	}

	pipeline := services.NewPipeline(cfg, airbnb.New(cfg, source, logger), logger, stdout)

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("Make sure PostgreSQL is reachable at %s:%s", cfg.PostgresHost, cfg.PostgresPort)
			return err
		}
		defer pgWriter.Close()
		pipeline.AddSink(pgWriter)
	}

	result, err := pipeline.Execute()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "  Done. %d records → %s | invalid policy numbers: %v\n",
		len(result.Records), cfg.CSVOutputPath, result.InvalidPolicies)
	return nil
}
