package splitter

import "github.com/bububa/waypoint/components/tokenizer"

// Chunk represents a window of tokens decoded back to text, with its position
// in the token sequence of the original text.
type Chunk struct {
	// Text is the decoded content of the window
	Text string
	// Tokens is the window itself
	Tokens []tokenizer.Token
	// TokenSize represents the number of tokens in this chunk
	TokenSize int
	// Start is the index of the first token in this chunk
	Start int
	// End is the index of the last token in this chunk (exclusive)
	End int
}

// Chunker splits text into chunks bounded by a token budget.
type Chunker interface {
	SplitText(text string) ([]string, error)
	CountTokens(text string) (int, error)
}
