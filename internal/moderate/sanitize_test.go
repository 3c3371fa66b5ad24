package moderate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced block",
			in:   "Here are the results:\n```json\n[{\"comment_id\": \"1\"}]\n```\nHope that helps!",
			want: `[{"comment_id": "1"}]`,
		},
		{
			name: "no fence trims whitespace",
			in:   "  [1, 2, 3]\n",
			want: "[1, 2, 3]",
		},
		{
			name: "multiline fenced content",
			in:   "```json\n[\n  {\"a\": 1}\n]\n```",
			want: "[\n  {\"a\": 1}\n]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSONBlock(tt.in); got != tt.want {
				t.Errorf("ExtractJSONBlock(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepairJSONTextSmartQuotes(t *testing.T) {
	in := "{“comment_id”: “1”, “note”: ‘fine’}"
	want := `{"comment_id": "1", "note": 'fine'}`
	if got := RepairJSONText(in); got != want {
		t.Errorf("RepairJSONText(%q) = %q, want %q", in, got, want)
	}
}

func TestRepairJSONTextMojibake(t *testing.T) {
	// U+201C/U+2019 as they appear after a UTF-8 -> Windows-1252 round trip.
	in := "â€œokâ€™"
	want := `"ok'`
	if got := RepairJSONText(in); got != want {
		t.Errorf("RepairJSONText(%q) = %q, want %q", in, got, want)
	}
}

func TestCanonicalizeQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain "quoted" text`, `plain "quoted" text`},
		{`escaped \" stays`, `escaped \" stays`},
		{"low „nine‟ quotes", `low "nine" quotes`},
	}
	for _, tt := range tests {
		if got := canonicalizeQuotes(tt.in); got != tt.want {
			t.Errorf("canonicalizeQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripInvalidEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`valid \n \t \" \/ A`, `valid \n \t \" \/ A`},
		{`over\-escaped`, `over-escaped`},
		{`bad \d escape`, `bad d escape`},
		{`trailing backslash \`, `trailing backslash `},
		{`double \\n collapses`, `double \n collapses`},
	}
	for _, tt := range tests {
		if got := stripInvalidEscapes(tt.in); got != tt.want {
			t.Errorf("stripInvalidEscapes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeWellFormedPassThrough(t *testing.T) {
	raw := `[{"comment_id": "1", "is_offensive": true, "offense_type": "spam", "explanation": "ad"}]`
	got := Normalize(raw, zerolog.Nop())
	want := []Verdict{{
		"comment_id":   "1",
		"is_offensive": true,
		"offense_type": "spam",
		"explanation":  "ad",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeFencedBlock(t *testing.T) {
	raw := "```json\n[{\"comment_id\":\"1\",\"is_offensive\":true,\"offense_type\":\"hate\",\"explanation\":\"slur\"}]\n```"
	got := Normalize(raw, zerolog.Nop())
	if len(got) != 1 {
		t.Fatalf("got %d verdicts, want 1", len(got))
	}
	if got[0].ID() != "1" {
		t.Errorf("verdict ID = %q, want %q", got[0].ID(), "1")
	}
}

func TestNormalizeRepairsSloppyReply(t *testing.T) {
	// Curly quotes and an over-escaped dash, as models actually emit.
	raw := `[{“comment_id”: “2”, “is_offensive”: false, “offense_type”: “”, “explanation”: “all\-clear”}]`
	got := Normalize(raw, zerolog.Nop())
	if len(got) != 1 {
		t.Fatalf("got %d verdicts, want 1", len(got))
	}
	if got[0]["explanation"] != "all-clear" {
		t.Errorf("explanation = %q, want %q", got[0]["explanation"], "all-clear")
	}
}

func TestNormalizeGarbageReturnsEmpty(t *testing.T) {
	for _, raw := range []string{"not json at all", "", "{\"an\": \"object, not an array\"}"} {
		if got := Normalize(raw, zerolog.Nop()); len(got) != 0 {
			t.Errorf("Normalize(%q) = %v, want empty", raw, got)
		}
	}
}
