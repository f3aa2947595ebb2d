package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordCleanedText(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   []string
	}{
		{name: "missing", record: Record{}, want: nil},
		{name: "strings", record: Record{FieldCleanedText: []string{"a", "b"}}, want: []string{"a", "b"}},
		{name: "decoded json", record: Record{FieldCleanedText: []any{"a", 1, "b"}}, want: []string{"a", "b"}},
		{name: "no strings", record: Record{FieldCleanedText: []any{1, true}}, want: nil},
		{name: "wrong type", record: Record{FieldCleanedText: "a"}, want: nil},
		{name: "nil record", record: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.CleanedText())
		})
	}
}

func TestRecordMeta(t *testing.T) {
	record := Record{
		FieldURL:         "https://example.com",
		FieldText:        "body",
		FieldMarkdown:    "# body",
		FieldCleanedText: []string{"body"},
		FieldChunks:      []string{"bo", "dy"},
		"rank":           json.Number("7"),
		"score":          0.5,
		"draft":          false,
		"tags":           []any{"x"},
	}
	assert.Equal(t, map[string]string{
		FieldURL: "https://example.com",
		"rank":   "7",
		"score":  "0.5",
		"draft":  "false",
	}, record.Meta())
}

func TestRecordClone(t *testing.T) {
	var empty Record
	clone := empty.Clone()
	clone.SetChunks(nil)
	assert.Equal(t, []string{}, clone[FieldChunks])

	record := Record{FieldURL: "u"}
	clone = record.Clone()
	clone[FieldURL] = "v"
	assert.Equal(t, "u", record.URL())
}
