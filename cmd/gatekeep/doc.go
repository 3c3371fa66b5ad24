// Gatekeep is a CLI for moderating user comments with a remote LLM
// classifier.
//
// It loads comments from a .csv or .json file, sends them to an
// OpenRouter-compatible chat-completions endpoint in fixed-size
// batches, merges the model's verdicts back onto the original records,
// and writes a moderated CSV, a text summary report, and an
// offense-type pie chart.
//
// Usage:
//
//	gatekeep comments.csv                       # outputs into the current directory
//	gatekeep comments.json --output_dir out/    # outputs into out/
//	gatekeep comments.csv --batch-size 5 --delay 1
//
// The OPENROUTER_API_KEY environment variable (or a .env file) must be
// set before running.
package main
