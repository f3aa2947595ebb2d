package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrInvalidRecords = errors.New("records must be a JSON object or an array of objects")
	// ErrNoContent is returned for blank input
	ErrNoContent = fmt.Errorf("%w: no content", ErrInvalidRecords)
)

// LoadRecords decodes either a JSON array of objects or a single object.
// Numbers are kept as json.Number so they are written back unchanged.
func LoadRecords(r io.Reader) ([]Record, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	bs = bytes.TrimSpace(bs)
	if len(bs) == 0 {
		return nil, ErrNoContent
	}
	decoder := json.NewDecoder(bytes.NewReader(bs))
	decoder.UseNumber()
	switch bs[0] {
	case '[':
		var records []Record
		if err := decoder.Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecords, err)
		}
		return records, nil
	case '{':
		var record Record
		if err := decoder.Decode(&record); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecords, err)
		}
		return []Record{record}, nil
	}
	return nil, ErrInvalidRecords
}

// SaveRecords writes records as an indented JSON array. Non ASCII text and
// HTML characters are written as is.
func SaveRecords(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	return encoder.Encode(records)
}

// ReadFile loads records from a JSON file.
func ReadFile(fname string) ([]Record, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fileInfo, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory", fname)
	}
	return LoadRecords(fp)
}

// WriteFile saves records to a JSON file, replacing its content.
func WriteFile(fname string, records []Record) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := SaveRecords(fp, records); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
