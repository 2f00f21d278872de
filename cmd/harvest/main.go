package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/startuppulse/harvest"
	"github.com/startuppulse/harvest/etree"
	"github.com/startuppulse/harvest/gemini"
	"github.com/startuppulse/harvest/goquery"
	harvesthttp "github.com/startuppulse/harvest/http"
	"github.com/startuppulse/harvest/pattern"
	"github.com/startuppulse/harvest/pipeline"
	"github.com/startuppulse/harvest/readability"
	"github.com/startuppulse/harvest/rod"
	harvestslog "github.com/startuppulse/harvest/slog"
	"github.com/startuppulse/harvest/sqlite"
	"github.com/startuppulse/harvest/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ArticleService harvest.ArticleService
	ReportService  harvest.ReportService
	ExportService  harvest.ExportService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'harvest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set HARVEST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ArticleService = harvestslog.NewLoggingArticleService(sqlite.NewArticleService(m.DB, logger), logger)
	m.ReportService = sqlite.NewReportService(m.DB)
	m.ExportService = sqlite.NewExportService(m.DB)
	deps.DB = m.DB
	deps.Articles = m.ArticleService
	deps.Reports = m.ReportService
	deps.Exports = m.ExportService

	// Commands that scrape need fetchers and the full scraper set.
	scraping := cmd == "run" || cmd == "fetch" || cmd == "serve" ||
		(cmd == "report" && cli.Report.Full)
	if scraping {
		feedFetcher := pipeline.NewRetryFetcher(harvesthttp.NewFetcher(), logger)
		defer feedFetcher.Close()

		// Rendered sources need a browser; skip it when the requested
		// source is feed-backed.
		var pageFetcher harvest.Fetcher
		if cmd != "fetch" || isRenderedSource(cli.Fetch.Source) {
			browser, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			pageFetcher = pipeline.NewRetryFetcher(rod.NewLoggingFetcher(browser, logger), logger)
			defer pageFetcher.Close()
		}

		deps.Scrapers = buildScrapers(feedFetcher, pageFetcher, trafilatura.NewExtractor(), logger)
		deps.Runner = &pipeline.Runner{
			Articles:    deps.Articles,
			Scrapers:    deps.Scrapers,
			Logger:      logger,
			Concurrency: cli.Run.Concurrency,
		}
	}

	// Commands that generate reports need the Gemini client.
	if cmd == "report" || cmd == "serve" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		counter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			logger.Warn("token counter unavailable, prompt trimming disabled", "error", err)
			counter = nil
		}

		deps.Reporter = gemini.NewReporter(
			gemini.NewSummarizer(client, gemini.CleaningModel),
			gemini.NewSummarizer(client, gemini.CompositionModel),
			deps.Exports,
			deps.Reports,
			tokenCounterOrNil(counter),
			logger,
		)
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for local token counting. The tokenizer package
// lags behind model releases, so this stays on a supported model.
const tokenizerModel = "gemini-2.5-flash"

// tokenCounterOrNil avoids storing a typed nil in the interface field.
func tokenCounterOrNil(c *gemini.TokenCounter) harvest.TokenCounter {
	if c == nil {
		return nil
	}
	return c
}

func defaultDBPath() string {
	if path := os.Getenv("HARVEST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "harvest.db"
	}
	dir := filepath.Join(home, ".harvest")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "harvest.db")
}

// buildScrapers assembles the full source set. Feed-backed sources share
// the plain HTTP fetcher; rendered sources share the browser. A nil
// pageFetcher omits the rendered sources.
func buildScrapers(feedFetcher, pageFetcher harvest.Fetcher, extractor harvest.ContentExtractor, logger *slog.Logger) []harvest.Scraper {
	scrapers := []harvest.Scraper{
		etree.NewStrictlyVC(feedFetcher, logger),
		etree.NewVentureBeat(feedFetcher, logger),
		etree.NewTechReview(feedFetcher, logger),
		etree.NewCrunchbase(feedFetcher, logger),
		etree.NewCoinDesk(feedFetcher, logger),
		etree.NewCointelegraph(feedFetcher, logger),
		etree.NewChinaTechNews(feedFetcher, logger),
		etree.NewHackerNewsShow(feedFetcher, logger),
		pattern.NewTechCrunch(feedFetcher, logger),
		pattern.NewFastCompany(feedFetcher, logger),
	}
	if pageFetcher != nil {
		scrapers = append(scrapers,
			goquery.NewTrending(pageFetcher, logger),
			goquery.NewYCombinator(pageFetcher, extractor, logger),
			// Press-release pages respond better to readability than to
			// trafilatura's fallback chain.
			goquery.NewPitchBook(pageFetcher, readability.NewExtractor(), logger),
		)
	}
	return scrapers
}

// isRenderedSource reports whether the named source requires a browser.
func isRenderedSource(name string) bool {
	switch name {
	case "github-trending", "ycombinator", "pitchbook":
		return true
	}
	return false
}
