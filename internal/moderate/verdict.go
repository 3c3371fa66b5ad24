package moderate

import "gatekeep/internal/record"

// Verdict is the classifier's judgment for one comment. It is kept as
// the raw decoded JSON object so that merging preserves the model's
// exact value types; the aggregator's strict is_offensive check
// depends on that.
type Verdict map[string]any

// ID returns the verdict's comment_id in the same canonical string
// form the record index uses.
func (v Verdict) ID() string {
	return record.FormatID(v[record.FieldID])
}
