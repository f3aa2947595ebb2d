package document

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/words"
	"go.uber.org/zap"

	"github.com/bububa/waypoint/components/splitter"
)

// Summary aggregates the diagnostics of one ChunkRecords run.
type Summary struct {
	// Records is the number of records that were chunked
	Records int `json:"records"`
	// Characters is the number of unicode characters of the joined text
	Characters int `json:"characters"`
	// Words is the number of word segments of the joined text
	Words int `json:"words"`
	// Tokens is the number of tokens before chunking
	Tokens int `json:"tokens"`
	// Chunks is the number of chunks created
	Chunks int `json:"chunks"`
}

func (s *Summary) Add(v Summary) {
	s.Records += v.Records
	s.Characters += v.Characters
	s.Words += v.Words
	s.Tokens += v.Tokens
	s.Chunks += v.Chunks
}

type ChunkOptions struct {
	dropEmpty bool
	logger    *zap.Logger
}

type ChunkOption func(*ChunkOptions)

// WithDropEmpty drops records without cleaned text instead of passing them through
func WithDropEmpty(drop bool) ChunkOption {
	return func(o *ChunkOptions) {
		o.dropEmpty = drop
	}
}

// WithChunkLogger sets the logger receiving per record and summary diagnostics
func WithChunkLogger(logger *zap.Logger) ChunkOption {
	return func(o *ChunkOptions) {
		o.logger = logger
	}
}

// ChunkRecords joins the cleaned text fragments of every record with a single
// space, splits the result with chunker and attaches the chunks under
// FieldChunks. The input records are not modified; annotated records are
// copies.
//
// Records without fragments are passed through, or dropped with
// WithDropEmpty. Tokenizer errors are returned as is and abort the run.
func ChunkRecords(chunker splitter.Chunker, records []Record, opts ...ChunkOption) ([]Record, Summary, error) {
	options := ChunkOptions{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	var total Summary
	ret := make([]Record, 0, len(records))
	for _, record := range records {
		fragments := record.CleanedText()
		if len(fragments) == 0 {
			if !options.dropEmpty {
				ret = append(ret, record)
			}
			continue
		}
		fullText := strings.Join(fragments, " ")
		chunks, err := chunker.SplitText(fullText)
		if err != nil {
			return nil, total, err
		}
		tokens, err := chunker.CountTokens(fullText)
		if err != nil {
			return nil, total, err
		}
		stats := Summary{
			Records:    1,
			Characters: utf8.RuneCountInString(fullText),
			Words:      countWords(fullText),
			Tokens:     tokens,
			Chunks:     len(chunks),
		}
		total.Add(stats)

		chunked := record.Clone()
		chunked.SetChunks(chunks)
		ret = append(ret, chunked)

		options.logger.Info("chunked record",
			zap.String("url", record.URL()),
			zap.Int("characters", stats.Characters),
			zap.Int("words", stats.Words),
			zap.Int("tokens", stats.Tokens),
			zap.Int("chunks", stats.Chunks))
	}
	options.logger.Info("chunking summary",
		zap.Int("records", total.Records),
		zap.Int("characters", total.Characters),
		zap.Int("words", total.Words),
		zap.Int("tokens", total.Tokens),
		zap.Int("chunks", total.Chunks))
	return ret, total, nil
}

// countWords counts the word segments holding at least one letter or digit.
func countWords(txt string) int {
	var n int
	for _, seg := range words.SegmentAll([]byte(txt)) {
		for _, r := range string(seg) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				n++
				break
			}
		}
	}
	return n
}
