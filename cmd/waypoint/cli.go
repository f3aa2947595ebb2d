package main

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/bububa/waypoint/components/document"
	"github.com/bububa/waypoint/components/tokenizer"
	"github.com/bububa/waypoint/components/vectordb"
	"github.com/bububa/waypoint/config"
)

// Asker answers a question from the index.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
	AskStream(ctx context.Context, question string, fn func(delta string) error) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Stdin     io.Reader
	Config    *config.Config
	Logger    *zap.Logger
	Scraper   *document.Scraper
	Cleaner   *document.Cleaner
	Tokenizer tokenizer.Tokenizer
	Store     *vectordb.Store
	Asker     Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" type:"path" help:"YAML config file (default $WAYPOINT_CONFIG)"`

	Scrape ScrapeCmd `cmd:"" help:"Convert HTML files or pages into records"`
	Clean  CleanCmd  `cmd:"" help:"Extract plain text from scraped records"`
	Chunk  ChunkCmd  `cmd:"" help:"Split cleaned text into token bounded chunks"`
	Index  IndexCmd  `cmd:"" help:"Embed chunks into the vector index"`
	Ask    AskCmd    `cmd:"" help:"Answer a question from the indexed chunks"`
	Serve  ServeCmd  `cmd:"" help:"Answer questions over HTTP at POST /api/prompt"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Inputs    []string `arg:"" help:"HTML files or http(s) URLs"`
	Directory bool     `short:"d" help:"Parse the files as staff directory listings"`
	Append    bool     `short:"a" help:"Extend the output file instead of replacing it"`
	Output    string   `short:"o" default:"data.json" help:"Output JSON file"`
}

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	Input  string `short:"i" default:"data.json" help:"Scraped records"`
	Output string `short:"o" default:"cleaned_output.json" help:"Output JSON file"`
}

// ChunkCmd is the "chunk" subcommand.
type ChunkCmd struct {
	Input     string `short:"i" default:"cleaned_output.json" help:"Cleaned records"`
	Output    string `short:"o" default:"chunked_output.json" help:"Output JSON file"`
	MaxTokens int    `short:"m" name:"max-tokens" help:"Maximum tokens per chunk, 0 uses the config value"`
	Overlap   int    `default:"-1" help:"Tokens shared by adjacent chunks, -1 uses the config value"`
	DropEmpty bool   `name:"drop-empty" help:"Drop records without cleaned text"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Input   string `short:"i" default:"chunked_output.json" help:"Chunked records"`
	Rebuild bool   `short:"r" help:"Delete the collection before indexing"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question []string `arg:"" optional:"" help:"Question to ask, read from stdin when omitted"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Host string `help:"Interface to listen on, all when empty"`
	Port int    `short:"p" default:"8000" env:"PORT" help:"Port to listen on"`
	CSP  string `name:"csp" help:"Content-Security-Policy header of every response"`
}
