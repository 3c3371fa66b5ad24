package moderate

import (
	"fmt"
	"strings"

	"gatekeep/internal/record"
)

const promptHeader = "You are a content moderation AI.\n" +
	"For each of the following comments, return a JSON list with:\n" +
	"- comment_id\n" +
	"- is_offensive (True/False)\n" +
	"- offense_type\n" +
	"- explanation\n\n" +
	"Comments:\n"

const promptFooter = "\nOnly return the JSON list. No markdown or explanation."

// BuildPrompt assembles the instruction for one batch: a numbered
// [comment_id: X] "text" line per comment between the fixed header and
// footer.
func BuildPrompt(batch []record.Record) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	for i, c := range batch {
		fmt.Fprintf(&b, "%d. [comment_id: %s] \"%s\"\n", i+1, c.ID(), c.Text())
	}
	b.WriteString(promptFooter)
	return b.String()
}
