package vectordb

import (
	"errors"
	"fmt"

	"github.com/philippgille/chromem-go"
)

type Provider = string

const (
	ProviderMistral Provider = "mistral"
	ProviderOpenAI  Provider = "openai"
	ProviderOllama  Provider = "ollama"
)

var ErrMissingAPIKey = errors.New("embedding provider requires an api key")

// NewEmbeddingFunc returns the chromem embedding function of a hosted or
// local embedding provider. model is ignored by Mistral, which only serves
// mistral-embed. baseURL only applies to Ollama.
func NewEmbeddingFunc(provider Provider, model string, apiKey string, baseURL string) (chromem.EmbeddingFunc, error) {
	switch provider {
	case ProviderMistral:
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return chromem.NewEmbeddingFuncMistral(apiKey), nil
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		if model == "" {
			model = string(chromem.EmbeddingModelOpenAI3Small)
		}
		return chromem.NewEmbeddingFuncOpenAI(apiKey, chromem.EmbeddingModelOpenAI(model)), nil
	case ProviderOllama:
		if model == "" {
			model = "nomic-embed-text"
		}
		return chromem.NewEmbeddingFuncOllama(model, baseURL), nil
	}
	return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
}
