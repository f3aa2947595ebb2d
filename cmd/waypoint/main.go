package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/bububa/waypoint/agents/rag"
	"github.com/bububa/waypoint/components/document"
	"github.com/bububa/waypoint/components/llm"
	"github.com/bububa/waypoint/components/tokenizer"
	"github.com/bububa/waypoint/components/vectordb"
	"github.com/bububa/waypoint/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path, overridden by --config.
	ConfigPath string

	// Stdin is read by ask when no question is given on the command line.
	Stdin io.Reader

	// Getenv looks up api keys.
	Getenv func(string) string

	// Hosted services. Set before calling Run() to replace them.
	HTTPClient    *http.Client
	EmbeddingFunc chromem.EmbeddingFunc
	Answerer      llm.Answerer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: os.Getenv("WAYPOINT_CONFIG"),
		Stdin:      os.Stdin,
		Getenv:     os.Getenv,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("waypoint"),
		kong.Description("Scrape, clean, chunk and index pages, then ask questions about them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return errors.New("no command specified. Run 'waypoint --help' to see available commands")
	}
	if args[0] == "help" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		_, _ = parser.Parse(args)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	configPath := m.ConfigPath
	if cli.Config != "" {
		configPath = cli.Config
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	deps.Config = cfg
	deps.Logger = logger

	// Wire command-specific dependencies based on command
	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "scrape":
		opts := []document.ScraperOption{document.WithScraperLogger(logger)}
		if m.HTTPClient != nil {
			opts = append(opts, document.WithHttpClient(m.HTTPClient))
		}
		deps.Scraper = document.NewScraper(opts...)
	case "clean":
		deps.Cleaner = document.NewCleaner(document.WithCleanerLogger(logger))
	case "chunk":
		tok, err := tokenizer.New(cfg.Tokenizer.Encoding)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: set tokenizer.encoding to a tiktoken encoding or \"runes\"")
			return fmt.Errorf("failed to load tokenizer: %w", err)
		}
		deps.Tokenizer = tok
	case "index", "ask", "serve":
		store, err := m.openStore(cfg, logger, stderr)
		if err != nil {
			return err
		}
		deps.Store = store
		if cmd != "index" {
			answerer, err := m.answerer(ctx, cfg, stderr)
			if err != nil {
				return err
			}
			generator, err := rag.NewContextGenerator(cfg.LLM.Prompt)
			if err != nil {
				return err
			}
			deps.Asker = rag.NewAsker(store, answerer,
				rag.WithTopK(cfg.Index.TopK),
				rag.WithContextGenerator(generator),
				rag.WithLogger(logger))
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openStore(cfg *config.Config, logger *zap.Logger, stderr io.Writer) (*vectordb.Store, error) {
	embed := m.EmbeddingFunc
	if embed == nil {
		var apiKey string
		switch cfg.Index.Embedder {
		case vectordb.ProviderMistral:
			apiKey = m.Getenv("MISTRAL_API_KEY")
		case vectordb.ProviderOpenAI:
			apiKey = m.Getenv("OPENAI_API_KEY")
		}
		fn, err := vectordb.NewEmbeddingFunc(cfg.Index.Embedder, cfg.Index.Model, apiKey, cfg.Index.BaseURL)
		if err != nil {
			if errors.Is(err, vectordb.ErrMissingAPIKey) {
				fmt.Fprintf(stderr, "Hint: set %s_API_KEY to use the %s embedder\n", strings.ToUpper(cfg.Index.Embedder), cfg.Index.Embedder)
			}
			return nil, fmt.Errorf("failed to create embedder: %w", err)
		}
		embed = fn
	}
	return vectordb.Open(cfg.Index.Path, cfg.Index.Compress,
		vectordb.WithCollection(cfg.Index.Collection),
		vectordb.WithTopK(cfg.Index.TopK),
		vectordb.WithConcurrency(cfg.Index.Concurrency),
		vectordb.WithEmbeddingFunc(embed),
		vectordb.WithLogger(logger))
}

func (m *Main) answerer(ctx context.Context, cfg *config.Config, stderr io.Writer) (llm.Answerer, error) {
	if m.Answerer != nil {
		return m.Answerer, nil
	}
	opts := []llm.Option{llm.WithTemperature(cfg.LLM.Temperature)}
	if cfg.LLM.Model != "" {
		opts = append(opts, llm.WithModel(cfg.LLM.Model))
	}
	switch cfg.LLM.Provider {
	case llm.ProviderOpenAI:
		apiKey := m.Getenv("OPENAI_API_KEY")
		if apiKey == "" && cfg.LLM.BaseURL == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set.")
			return nil, errors.New("OPENAI_API_KEY not set")
		}
		return llm.NewOpenAI(llm.NewOpenAIClient(apiKey, cfg.LLM.BaseURL), opts...), nil
	default:
		apiKey := m.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, errors.New("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := llm.NewGeminiClient(ctx, apiKey, cfg.LLM.BaseURL)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return llm.NewGemini(client, opts...), nil
	}
}
