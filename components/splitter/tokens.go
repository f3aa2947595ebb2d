package splitter

// Tokens splits text into fixed size token windows. A window is closed as
// soon as it holds ChunkSize tokens; only the last window may be shorter.
// With an overlap of n, each window after the first starts with the last n
// tokens of its predecessor.
type Tokens struct {
	Options
}

var _ Chunker = (*Tokens)(nil)

// NewTokens creates a token splitter. The chunk size defaults to
// DefaultChunkSize and the overlap to 0. A tokenizer is required.
func NewTokens(opts ...Option) (*Tokens, error) {
	ret := &Tokens{
		Options: Options{
			chunkSize: DefaultChunkSize,
		},
	}
	for _, opt := range opts {
		opt(&ret.Options)
	}
	if err := ret.validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// CountTokens returns the number of tokens in txt. Errors from the tokenizer
// are returned as is.
func (s *Tokens) CountTokens(txt string) (int, error) {
	if s.tokenizer == nil {
		return 0, ErrNoTokenizer
	}
	if txt == "" {
		return 0, nil
	}
	tokens, err := s.tokenizer.Encode(txt)
	if err != nil {
		return 0, err
	}
	return len(tokens), nil
}

// Split tokenizes txt and cuts the token sequence into windows.
// Text without tokens yields no chunks.
func (s *Tokens) Split(txt string) ([]Chunk, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	tokens, err := s.tokenizer.Encode(txt)
	if err != nil {
		return nil, err
	}
	total := len(tokens)
	if total == 0 {
		return nil, nil
	}
	step := s.chunkSize - s.overlap
	chunks := make([]Chunk, 0, (total+step-1)/step)
	for start := 0; ; start += step {
		end := min(start+s.chunkSize, total)
		window := tokens[start:end:end]
		text, err := s.tokenizer.Decode(window)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{
			Text:      text,
			Tokens:    window,
			TokenSize: len(window),
			Start:     start,
			End:       end,
		})
		if end == total {
			break
		}
	}
	return chunks, nil
}

// SplitText is Split without the token bookkeeping.
func (s *Tokens) SplitText(txt string) ([]string, error) {
	chunks, err := s.Split(txt)
	if err != nil || len(chunks) == 0 {
		return nil, err
	}
	ret := make([]string, len(chunks))
	for idx, v := range chunks {
		ret[idx] = v.Text
	}
	return ret, nil
}
