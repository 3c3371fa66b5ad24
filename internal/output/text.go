package output

import (
	"fmt"
	"io"

	"gatekeep/internal/moderate"
)

// WriteTextReport renders the summary report: totals, the offense-type
// breakdown in first-seen order, and the top offensive comments with
// their type and explanation.
func WriteTextReport(w io.Writer, rep *moderate.Report) error {
	ew := &errWriter{w: w}

	ew.printf("=== Moderation Report ===\n\n")
	ew.printf("Total Comments: %d\n", rep.Total)
	ew.printf("Offensive Comments: %d\n\n", len(rep.Offensive))

	ew.printf("Offense Type Breakdown:\n")
	for _, typ := range rep.TypeOrder {
		ew.printf("  - %s: %d\n", typ, rep.TypeCounts[typ])
	}

	ew.printf("\nTop %d Most Offensive Comments:\n", moderate.TopN)
	for i, rec := range rep.Top {
		ew.printf("%d. %s\n", i+1, rec.Text())
		ew.printf("   → Type: %s\n", moderate.OffenseType(rec))
		ew.printf("   → Explanation: %s\n\n", moderate.Explanation(rec))
	}

	return ew.err
}

// errWriter captures the first write error so the report body can be
// emitted without per-line error checks.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
