package tokenizer

import "errors"

// Token is an opaque identifier produced by a Tokenizer.
type Token = int

// Tokenizer converts text into tokens and back.
// Implementations must be deterministic: the same text always encodes to the
// same token sequence, and decoding a contiguous range of that sequence
// reproduces the exact bytes the range stands for.
type Tokenizer interface {
	// Encode splits text into tokens
	Encode(text string) ([]Token, error)
	// Decode joins tokens back into text
	Decode(tokens []Token) (string, error)
}

// EncodingRunes selects the Runes tokenizer in New
const EncodingRunes = "runes"

var ErrUnknownEncoding = errors.New("unknown tokenizer encoding")

// New returns the tokenizer registered for encoding.
// "runes" selects Runes, anything else is looked up as a tiktoken encoding
// such as "cl100k_base" or "o200k_base".
func New(encoding string) (Tokenizer, error) {
	switch encoding {
	case "":
		return nil, ErrUnknownEncoding
	case EncodingRunes:
		return Runes{}, nil
	default:
		return NewTikToken(encoding)
	}
}

// Count returns the number of tokens text encodes to.
func Count(t Tokenizer, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	tokens, err := t.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(tokens), nil
}
