// Package moderate contains the core engine for LLM-based comment
// moderation.
//
// It assembles batch prompts from comment records, repairs and parses
// the JSON verdict arrays that models return (fence extraction, smart
// quote and escape repair, strict decode), and merges verdicts back
// onto their records by comment_id.
//
// Batches run strictly in sequence with a fixed inter-batch delay.
// Every failure mode past startup is per-batch and recoverable: a
// transport error, an unparseable reply, or a verdict naming an
// unknown comment_id drops that batch or verdict with a log line and
// leaves the affected comments unmoderated.
//
// Aggregate (report.go) computes the run summary: offensive counts,
// an offense-type histogram in first-seen order, and the top five
// offensive comments ranked by explanation length.
package moderate
