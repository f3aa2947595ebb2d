package document

import (
	"encoding/json"
	"maps"
	"strconv"
)

// Well known record fields. Any other field is metadata and travels with the
// record untouched.
const (
	FieldURL         = "url"
	FieldTitle       = "title"
	FieldText        = "text"
	FieldMarkdown    = "markdown"
	FieldCleanedText = "cleaned_text"
	FieldChunks      = "chunks"
)

var contentFields = map[string]struct{}{
	FieldText:        {},
	FieldMarkdown:    {},
	FieldCleanedText: {},
	FieldChunks:      {},
}

// Record is one JSON object flowing through the pipeline.
type Record map[string]any

// Clone returns a shallow copy of the record. Cloning a nil record returns an
// empty one.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// String returns the field as a string, or "" when missing or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

func (r Record) URL() string {
	return r.String(FieldURL)
}

// CleanedText returns the cleaned text fragments. A missing field, a value of
// the wrong type or a list without strings all mean no fragments.
func (r Record) CleanedText() []string {
	return stringList(r[FieldCleanedText])
}

func (r Record) SetCleanedText(fragments []string) {
	if fragments == nil {
		fragments = []string{}
	}
	r[FieldCleanedText] = fragments
}

// Chunks returns the chunk list attached by ChunkRecords.
func (r Record) Chunks() []string {
	return stringList(r[FieldChunks])
}

// HasChunks reports whether a chunk list is attached, even an empty one.
func (r Record) HasChunks() bool {
	_, ok := r[FieldChunks]
	return ok
}

func (r Record) SetChunks(chunks []string) {
	if chunks == nil {
		chunks = []string{}
	}
	r[FieldChunks] = chunks
}

// Meta returns the scalar fields of the record as strings, leaving out the
// content fields.
func (r Record) Meta() map[string]string {
	ret := make(map[string]string, len(r))
	for k, v := range r {
		if _, ok := contentFields[k]; ok {
			continue
		}
		switch t := v.(type) {
		case string:
			ret[k] = t
		case json.Number:
			ret[k] = t.String()
		case bool:
			ret[k] = strconv.FormatBool(t)
		case float64:
			ret[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case int:
			ret[k] = strconv.Itoa(t)
		case int64:
			ret[k] = strconv.FormatInt(t, 10)
		}
	}
	return ret
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		ret := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				ret = append(ret, s)
			}
		}
		if len(ret) == 0 {
			return nil
		}
		return ret
	}
	return nil
}
