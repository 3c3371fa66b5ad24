package moderate

import (
	"fmt"
	"sort"

	"gatekeep/internal/record"
)

// TopN is how many offensive comments the report highlights.
const TopN = 5

// Report is the aggregate view over the merged record store. It is
// recomputed fresh per run and never persisted.
type Report struct {
	Total      int
	Offensive  []record.Record
	TypeCounts map[string]int
	TypeOrder  []string // histogram keys in first-seen record order
	Top        []record.Record
}

// Aggregate computes the run summary. A record counts as offensive
// only when its is_offensive field is exactly boolean true: the string
// "true" (which is all a CSV column can hold) never qualifies. The top
// list ranks offensive records by explanation length, descending, with
// a stable sort so equal lengths keep store order.
func Aggregate(store *record.Store) *Report {
	rep := &Report{
		Total:      len(store.Records),
		TypeCounts: make(map[string]int),
	}

	for _, rec := range store.Records {
		flag, ok := rec["is_offensive"].(bool)
		if !ok || !flag {
			continue
		}
		rep.Offensive = append(rep.Offensive, rec)

		t := OffenseType(rec)
		if _, seen := rep.TypeCounts[t]; !seen {
			rep.TypeOrder = append(rep.TypeOrder, t)
		}
		rep.TypeCounts[t]++
	}

	top := make([]record.Record, len(rep.Offensive))
	copy(top, rep.Offensive)
	sort.SliceStable(top, func(i, j int) bool {
		return explanationLen(top[i]) > explanationLen(top[j])
	})
	if len(top) > TopN {
		top = top[:TopN]
	}
	rep.Top = top

	return rep
}

// OffenseType returns a record's offense type, or "unspecified" when
// the field is absent.
func OffenseType(rec record.Record) string {
	v, ok := rec["offense_type"]
	if !ok {
		return "unspecified"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Explanation returns a record's explanation, or "" when absent or not
// a string.
func Explanation(rec record.Record) string {
	s, _ := rec["explanation"].(string)
	return s
}

func explanationLen(rec record.Record) int {
	return len(Explanation(rec))
}
