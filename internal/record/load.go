package record

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads an input file into a Store. The format is chosen by file
// extension; anything other than .csv or .json is rejected. An input
// with zero records is an error, as is a record missing comment_id or
// comment_text.
func Load(path string) (*Store, error) {
	var (
		store *Store
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		store, err = loadCSV(path)
	case ".json":
		store, err = loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q: use .csv or .json", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(store.Records) == 0 {
		return nil, fmt.Errorf("%s: input contains no comments", path)
	}
	for _, f := range []string{FieldID, FieldText} {
		if !contains(store.Fields, f) {
			return nil, fmt.Errorf("%s: input records are missing the %q field", path, f)
		}
	}
	return store, nil
}

func loadCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return &Store{}, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, field := range header {
			rec[field] = row[i]
		}
		records = append(records, rec)
	}
	return &Store{Fields: header, Records: records}, nil
}

func loadJSON(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Store{}, nil
	}

	// Column order comes from the first object's key order, the same
	// way a CSV header row defines it.
	fields, err := firstObjectKeys(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Store{Fields: fields, Records: records}, nil
}

// firstObjectKeys walks the token stream of a JSON array and returns
// the keys of the first object in document order, which Unmarshal into
// a map would lose.
func firstObjectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("expected a top-level JSON array")
	}
	if tok, err = dec.Token(); err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected an array of JSON objects")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, got %v", tok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
