package vectordb

import (
	"github.com/philippgille/chromem-go"
	"go.uber.org/zap"
)

const (
	DefaultCollection  = "waypoint"
	DefaultTopK        = 4
	DefaultConcurrency = 4
)

type Options struct {
	Collection    string                // Collection holding the chunks
	TopK          int                   // Maximum number of results to return
	Concurrency   int                   // Number of documents embedded at once
	EmbeddingFunc chromem.EmbeddingFunc // Embeds documents and queries
	Logger        *zap.Logger
}

// Option is a function type for configuring Store instances.
// It follows the functional options pattern for clean and flexible configuration.
type Option func(*Options)

func WithCollection(name string) Option {
	return func(o *Options) {
		o.Collection = name
	}
}

// WithTopK sets the maximum number of results to return when Search is
// called without an explicit limit.
//
// Example:
//
//	store, err := Open("./index", false,
//	    WithTopK(10), // Return top 10 results
//	)
func WithTopK(k int) Option {
	return func(o *Options) {
		o.TopK = k
	}
}

func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}

// WithEmbeddingFunc sets the function embedding chunks and queries. It must
// be the same function for indexing and searching a collection.
func WithEmbeddingFunc(fn chromem.EmbeddingFunc) Option {
	return func(o *Options) {
		o.EmbeddingFunc = fn
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
