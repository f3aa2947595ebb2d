package splitter

import (
	"errors"

	"github.com/bububa/waypoint/components/tokenizer"
)

const DefaultChunkSize = 2000

var (
	// ErrInvalidChunkSize is returned when the chunk size is not positive
	ErrInvalidChunkSize = errors.New("chunk size must be at least 1 token")
	// ErrInvalidOverlap is returned when the overlap is negative or does not
	// leave room for new tokens in every window
	ErrInvalidOverlap = errors.New("overlap must be between 0 and chunk size - 1")
	// ErrNoTokenizer is returned when no tokenizer was configured
	ErrNoTokenizer = errors.New("tokenizer is required")
)

type Options struct {
	chunkSize int
	overlap   int
	tokenizer tokenizer.Tokenizer
}

// Option is a function type for configuring splitter Options.
// This follows the functional options pattern for clean and flexible configuration.
type Option func(*Options)

// WithChunkSize sets the maximum number of tokens per chunk
func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.chunkSize = size
	}
}

// WithOverlap sets how many trailing tokens of a chunk are repeated at the
// start of the next one
func WithOverlap(overlap int) Option {
	return func(o *Options) {
		o.overlap = overlap
	}
}

func WithTokenizer(t tokenizer.Tokenizer) Option {
	return func(o *Options) {
		o.tokenizer = t
	}
}

func (o Options) ChunkSize() int {
	return o.chunkSize
}

func (o Options) Overlap() int {
	return o.overlap
}

func (o Options) Tokenizer() tokenizer.Tokenizer {
	return o.tokenizer
}

func (o Options) validate() error {
	if o.chunkSize < 1 {
		return ErrInvalidChunkSize
	}
	if o.overlap < 0 || o.overlap >= o.chunkSize {
		return ErrInvalidOverlap
	}
	if o.tokenizer == nil {
		return ErrNoTokenizer
	}
	return nil
}
