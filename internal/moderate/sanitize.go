package moderate

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// fencedJSON matches a markdown-fenced json block anywhere in the
// reply; models often wrap the array in prose.
var fencedJSON = regexp.MustCompile("(?s)```json\n(.+?)\n```")

// ExtractJSONBlock returns the inner content of the first fenced json
// block, or the trimmed whole text when there is no fence.
func ExtractJSONBlock(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return strings.TrimSpace(text)
}

// smartQuotes maps curly quotes, and their UTF-8/Windows-1252 mojibake
// renderings, to plain ASCII quotes. Every mojibake form is a full
// three-rune sequence; the U+201D one ends in an unprintable C1
// control rune.
var smartQuotes = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"â€œ", `"`, // U+201C read through a Windows-1252 decode
	"â€", `"`, // U+201D likewise
	"â€˜", "'", // U+2018 likewise
	"â€™", "'", // U+2019 likewise
)

// doubleQuoteRunes are codepoints canonicalized to the ASCII double
// quote when they appear unescaped.
var doubleQuoteRunes = map[rune]bool{
	'"':    true,
	'„': true, // low-9 double quote
	'‟': true, // reversed high double quote
}

// RepairJSONText applies the best-effort heuristics that recover
// strict-parseable JSON from a sloppy model reply: smart quote and
// mojibake replacement, canonicalization of unescaped double quotes,
// and deletion of backslashes that do not start a valid JSON escape.
func RepairJSONText(s string) string {
	s = smartQuotes.Replace(s)
	s = canonicalizeQuotes(s)
	return stripInvalidEscapes(s)
}

// canonicalizeQuotes rewrites every unescaped double-quote character
// to the ASCII double quote. Escaped quotes pass through untouched.
func canonicalizeQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			b.WriteRune(r)
			escaped = true
		case doubleQuoteRunes[r]:
			b.WriteByte('"')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validEscapes are the characters allowed after a backslash in JSON
// strings, per the repair policy. A backslash followed by anything
// else is an over-escape and is deleted.
const validEscapes = `"/bfnrtu`

func stripInvalidEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) || !strings.ContainsRune(validEscapes, rune(s[i+1])) {
			continue // drop the stray backslash, keep what follows
		}
		b.WriteByte(s[i])
		b.WriteByte(s[i+1])
		i++
	}
	return b.String()
}

// Normalize turns the model's raw reply for one batch into verdicts.
// An unparseable reply is not an error: it logs a warning and yields
// nothing, so a garbled batch degrades to unmoderated comments.
func Normalize(raw string, log zerolog.Logger) []Verdict {
	clean := RepairJSONText(ExtractJSONBlock(raw))
	var verdicts []Verdict
	if err := json.Unmarshal([]byte(clean), &verdicts); err != nil {
		log.Warn().Err(err).Msg("failed to parse model reply after repair; dropping batch verdicts")
		return nil
	}
	return verdicts
}
