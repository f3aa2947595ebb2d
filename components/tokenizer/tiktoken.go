package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE table used by GPT-4 family models
const DefaultEncoding = "cl100k_base"

// TikToken tokenizes text with the BPE schemes used by OpenAI models.
// The underlying tables are loaded once and only read afterwards, so a
// TikToken is safe for concurrent use.
type TikToken struct {
	encoding string
	tke      *tiktoken.Tiktoken
}

var _ Tokenizer = (*TikToken)(nil)

// NewTikToken creates a new TikToken using the specified encoding.
// Common encodings include:
// - "cl100k_base" (GPT-4, ChatGPT)
// - "o200k_base" (GPT-4o)
// - "p50k_base" (GPT-3)
// - "r50k_base" (Codex)
func NewTikToken(encoding string) (*TikToken, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %s: %w", encoding, err)
	}
	return &TikToken{encoding: encoding, tke: tke}, nil
}

// NewTikTokenForModel creates a TikToken with the encoding a model uses,
// e.g. "gpt-4o" or "text-embedding-3-small".
func NewTikTokenForModel(model string) (*TikToken, error) {
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding for model %s: %w", model, err)
	}
	return &TikToken{encoding: model, tke: tke}, nil
}

func (t *TikToken) Encoding() string {
	return t.encoding
}

// Encode treats special tokens such as <|endoftext|> as plain text.
func (t *TikToken) Encode(text string) ([]Token, error) {
	return t.tke.Encode(text, nil, nil), nil
}

func (t *TikToken) Decode(tokens []Token) (string, error) {
	return t.tke.Decode(tokens), nil
}
