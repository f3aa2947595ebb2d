package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bububa/waypoint/components/splitter"
	"github.com/bububa/waypoint/components/tokenizer"
)

var errTokenizer = errors.New("tokenizer unavailable")

type brokenTokenizer struct{}

func (brokenTokenizer) Encode(string) ([]tokenizer.Token, error) {
	return nil, errTokenizer
}

func (brokenTokenizer) Decode([]tokenizer.Token) (string, error) {
	return "", errTokenizer
}

func newRunesSplitter(t *testing.T, size int) *splitter.Tokens {
	t.Helper()
	s, err := splitter.NewTokens(splitter.WithChunkSize(size), splitter.WithTokenizer(tokenizer.Runes{}))
	require.NoError(t, err)
	return s
}

func testRecords() []Record {
	return []Record{
		{FieldURL: "https://example.com/a", FieldCleanedText: []any{"hello", "world"}},
		{FieldURL: "https://example.com/b"},
		{FieldURL: "https://example.com/c", FieldCleanedText: []any{}},
		{FieldURL: "https://example.com/d", FieldCleanedText: "not a list"},
	}
}

func TestChunkRecords(t *testing.T) {
	records := testRecords()
	got, summary, err := ChunkRecords(newRunesSplitter(t, 5), records)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, []string{"hello", " worl", "d"}, got[0].Chunks())
	assert.Equal(t, "https://example.com/a", got[0].URL())
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].HasChunks(), "record %d", i)
		assert.Equal(t, records[i], got[i])
	}
	assert.False(t, records[0].HasChunks(), "input records are not modified")

	assert.Equal(t, Summary{Records: 1, Characters: 11, Words: 2, Tokens: 11, Chunks: 3}, summary)
}

func TestChunkRecordsDropEmpty(t *testing.T) {
	got, summary, err := ChunkRecords(newRunesSplitter(t, 5), testRecords(), WithDropEmpty(true))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/a", got[0].URL())
	assert.Equal(t, 3, summary.Chunks)
}

func TestChunkRecordsBlankFragment(t *testing.T) {
	got, summary, err := ChunkRecords(newRunesSplitter(t, 5), []Record{{FieldCleanedText: []string{""}}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].HasChunks())
	assert.Empty(t, got[0].Chunks())
	assert.Equal(t, 1, summary.Records)
	assert.Equal(t, 0, summary.Tokens)
}

func TestChunkRecordsLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	withLogs, summary, err := ChunkRecords(newRunesSplitter(t, 5), testRecords(), WithChunkLogger(zap.New(core)))
	require.NoError(t, err)

	silent, silentSummary, err := ChunkRecords(newRunesSplitter(t, 5), testRecords())
	require.NoError(t, err)
	assert.Equal(t, silent, withLogs)
	assert.Equal(t, silentSummary, summary)

	perRecord := logs.FilterMessage("chunked record").All()
	require.Len(t, perRecord, 1)
	fields := perRecord[0].ContextMap()
	assert.Equal(t, "https://example.com/a", fields["url"])
	assert.EqualValues(t, 11, fields["characters"])
	assert.EqualValues(t, 11, fields["tokens"])
	assert.EqualValues(t, 3, fields["chunks"])

	totals := logs.FilterMessage("chunking summary").All()
	require.Len(t, totals, 1)
	assert.EqualValues(t, 1, totals[0].ContextMap()["records"])
	assert.EqualValues(t, 3, totals[0].ContextMap()["chunks"])
}

func TestChunkRecordsTokenizerError(t *testing.T) {
	s, err := splitter.NewTokens(splitter.WithTokenizer(brokenTokenizer{}))
	require.NoError(t, err)

	got, _, err := ChunkRecords(s, testRecords())
	assert.Equal(t, errTokenizer, err)
	assert.Nil(t, got)
}

func TestChunkRecordsInvalidSplitter(t *testing.T) {
	_, _, err := ChunkRecords(new(splitter.Tokens), testRecords())
	assert.ErrorIs(t, err, splitter.ErrInvalidChunkSize)
}

func TestChunkRecordsFromJSON(t *testing.T) {
	records, err := LoadRecords(strings.NewReader(`[
		{"url": "https://example.com", "cleaned_text": ["abc", "def"], "rank": 3},
		{"url": "https://example.com/empty", "cleaned_text": []}
	]`))
	require.NoError(t, err)

	got, _, err := ChunkRecords(newRunesSplitter(t, 4), records)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"abc ", "def"}, got[0].Chunks())
	assert.False(t, got[1].HasChunks())

	var sb strings.Builder
	require.NoError(t, SaveRecords(&sb, got))
	assert.Contains(t, sb.String(), `"chunks": [`)
	assert.Contains(t, sb.String(), `"rank": 3`)
}

func TestChunkRecordsNilLogger(t *testing.T) {
	want, _, err := ChunkRecords(newRunesSplitter(t, 5), testRecords())
	require.NoError(t, err)

	var got []Record
	assert.NotPanics(t, func() {
		got, _, err = ChunkRecords(newRunesSplitter(t, 5), testRecords(), WithChunkLogger(nil))
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
