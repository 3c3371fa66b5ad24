package record

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Field names required on every input record.
const (
	FieldID   = "comment_id"
	FieldText = "comment_text"
)

// ModerationFields are the columns the classifier adds to each record.
// They are appended to the export header when the input did not already
// carry them.
var ModerationFields = []string{"is_offensive", "offense_type", "explanation"}

// Record is a single comment row. Values are strings for CSV input and
// whatever the JSON decoder produced for JSON input.
type Record map[string]any

// ID returns the record's comment_id in canonical string form.
func (r Record) ID() string {
	return FormatID(r[FieldID])
}

// Text returns the comment text, or "" if absent.
func (r Record) Text() string {
	s, _ := r[FieldText].(string)
	return s
}

// Store is the ordered collection of records for one run, plus the
// field order observed in the input.
type Store struct {
	Fields  []string
	Records []Record
}

// Index maps canonical comment_id to record. Records share the
// underlying maps, so mutating an indexed record mutates the store.
// A later duplicate id overwrites an earlier one in the index only;
// the ordered Records slice keeps every row.
func (s *Store) Index() map[string]Record {
	idx := make(map[string]Record, len(s.Records))
	for _, r := range s.Records {
		idx[r.ID()] = r
	}
	return idx
}

// ExportFields returns the output column order: the input fields with
// the moderation fields appended when not already present.
func (s *Store) ExportFields() []string {
	fields := make([]string, len(s.Fields))
	copy(fields, s.Fields)
	for _, mf := range ModerationFields {
		if !contains(fields, mf) {
			fields = append(fields, mf)
		}
	}
	return fields
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

// FormatID renders a comment_id value as the canonical string used for
// indexing and merging. JSON numbers render without a trailing ".0" so
// an id of 7 from a JSON file matches "7" from a CSV file.
func FormatID(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
