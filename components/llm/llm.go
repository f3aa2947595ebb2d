package llm

import (
	"context"
	"errors"
)

type Provider = string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

const DefaultTemperature float32 = 0.2

var ErrEmptyAnswer = errors.New("model returned no answer")

// Answerer sends a prompt to a hosted chat model and returns its reply.
type Answerer interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// Streamer is an Answerer that hands out the reply in pieces as the model
// generates it.
type Streamer interface {
	Answerer
	Stream(ctx context.Context, prompt string, fn func(delta string) error) error
}

// Options holds the generation settings shared by all providers.
type Options struct {
	model       string
	temperature float32
}

// Option is a function type for configuring an Answerer.
type Option func(*Options)

func WithModel(model string) Option {
	return func(o *Options) {
		o.model = model
	}
}

func WithTemperature(t float32) Option {
	return func(o *Options) {
		o.temperature = t
	}
}

func (o Options) Model() string {
	return o.model
}

func (o Options) Temperature() float32 {
	return o.temperature
}

func newOptions(model string, opts []Option) Options {
	ret := Options{
		model:       model,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(&ret)
	}
	return ret
}
