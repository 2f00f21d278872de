package main

import (
	"context"
	"io"

	"github.com/startuppulse/harvest"
	"github.com/startuppulse/harvest/pipeline"
	"github.com/startuppulse/harvest/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Articles harvest.ArticleService
	Reports  harvest.ReportService
	Exports  harvest.ExportService
	Scrapers []harvest.Scraper
	Runner   *pipeline.Runner
	Reporter harvest.Reporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Scrape every source and persist new articles"`
	Fetch   FetchCmd   `cmd:"" help:"Scrape a single source"`
	Export  ExportCmd  `cmd:"" help:"Snapshot stored articles for report generation"`
	Report  ReportCmd  `cmd:"" help:"Generate an AI market report from the latest export"`
	Reports ReportsCmd `cmd:"" help:"List stored reports"`
	Show    ShowCmd    `cmd:"" help:"Print a stored report as Markdown"`
	Delete  DeleteCmd  `cmd:"" help:"Delete all stored articles and exports"`
	Serve   ServeCmd   `cmd:"" help:"Serve the HTTP trigger API"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Concurrency int `short:"c" default:"4" help:"Concurrent source limit"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Source string `arg:"" help:"Source name (e.g. techcrunch)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct{}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	Full bool   `help:"Clear the store, re-run the pipeline, and export before generating"`
	Out  string `short:"o" help:"Directory to write the report HTML to"`
}

// ReportsCmd is the "reports" subcommand.
type ReportsCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" optional:"" help:"Report ID (defaults to the newest report)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Force bool `help:"Confirm deletion"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"HARVEST_ADDR" help:"Listen address"`
}
