// Package record holds the in-memory comment store for a moderation run.
//
// Records are open field maps whose columns come from the input file
// itself: a CSV header row or the keys of a JSON object array. The store
// preserves input order for export and builds a comment_id index for
// merging classifier verdicts back onto rows.
package record
