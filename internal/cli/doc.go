// Package cli wires together the Cobra command tree for the gatekeep
// binary.
//
// The root command takes the input file as its positional argument,
// binds flags, loads configuration, runs the moderation engine, and
// writes the three output artifacts. Fatal errors (missing credential,
// unreadable input, unsupported format, empty input) surface as a
// stderr diagnostic and exit code 1; per-batch failures are logged and
// never abort the run.
package cli
