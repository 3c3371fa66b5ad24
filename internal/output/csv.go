package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gatekeep/internal/record"
)

// WriteCSV exports every record in store order, one row per input
// record, under the input header plus any missing moderation columns.
func WriteCSV(w io.Writer, store *record.Store) error {
	fields := store.ExportFields()

	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return err
	}
	row := make([]string, len(fields))
	for _, rec := range store.Records {
		for i, f := range fields {
			row[i] = formatValue(rec[f])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatValue renders a cell. Merged JSON values keep their types in
// memory, so bools and numbers need explicit string forms; absent
// fields become empty cells.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
