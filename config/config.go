// Package config loads the pipeline settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/bububa/waypoint/agents/rag"
	"github.com/bububa/waypoint/components/llm"
	"github.com/bububa/waypoint/components/splitter"
	"github.com/bububa/waypoint/components/tokenizer"
	"github.com/bububa/waypoint/components/vectordb"
)

type Config struct {
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Chunk     ChunkConfig     `yaml:"chunk"`
	Index     IndexConfig     `yaml:"index"`
	LLM       LLMConfig       `yaml:"llm"`
	Log       LogConfig       `yaml:"log"`
}

type TokenizerConfig struct {
	// Encoding is a tiktoken encoding name, or "runes"
	Encoding string `yaml:"encoding" validate:"required"`
}

type ChunkConfig struct {
	MaxTokens int  `yaml:"max_tokens" validate:"gte=1"`
	Overlap   int  `yaml:"overlap" validate:"gte=0,ltfield=MaxTokens"`
	DropEmpty bool `yaml:"drop_empty"`
}

type IndexConfig struct {
	// Path of the persisted vector db, empty keeps it in memory
	Path        string `yaml:"path"`
	Collection  string `yaml:"collection" validate:"required"`
	Compress    bool   `yaml:"compress"`
	Embedder    string `yaml:"embedder" validate:"oneof=mistral openai ollama"`
	Model       string `yaml:"model"`
	BaseURL     string `yaml:"base_url" validate:"omitempty,url"`
	TopK        int    `yaml:"top_k" validate:"gte=1"`
	Concurrency int    `yaml:"concurrency" validate:"gte=1"`
}

type LLMConfig struct {
	Provider    string  `yaml:"provider" validate:"oneof=gemini openai"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url" validate:"omitempty,url"`
	Temperature float32 `yaml:"temperature" validate:"gte=0,lte=2"`
	// Prompt selects the context generator: stuff or assistant
	Prompt string `yaml:"prompt" validate:"oneof=stuff assistant"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the settings used when no file overrides them.
func Default() Config {
	return Config{
		Tokenizer: TokenizerConfig{
			Encoding: tokenizer.DefaultEncoding,
		},
		Chunk: ChunkConfig{
			MaxTokens: splitter.DefaultChunkSize,
		},
		Index: IndexConfig{
			Path:        "vector_index",
			Collection:  vectordb.DefaultCollection,
			Embedder:    vectordb.ProviderMistral,
			TopK:        vectordb.DefaultTopK,
			Concurrency: vectordb.DefaultConcurrency,
		},
		LLM: LLMConfig{
			Provider:    llm.ProviderGemini,
			Temperature: llm.DefaultTemperature,
			Prompt:      rag.PromptStuff,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return &cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Logger builds the zap logger described by the log section.
func (c Config) Logger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Log.Level != "" {
		lvl, err := zapcore.ParseLevel(c.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = lvl
	}
	var zc zap.Config
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
