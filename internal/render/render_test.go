package render

import (
	"strings"
	"testing"
)

func TestPoemHTML_KeepsLineBreaks(t *testing.T) {
	got := string(PoemHTML("Waves kiss the cold shore\nMoonlight dances on the tide\nSilence holds the deep"))

	if strings.Count(got, "<br") != 2 {
		t.Errorf("expected two line breaks, got %q", got)
	}
	for _, line := range []string{"Waves kiss the cold shore", "Moonlight dances on the tide", "Silence holds the deep"} {
		if !strings.Contains(got, line) {
			t.Errorf("missing line %q in %q", line, got)
		}
	}
}

func TestPoemHTML_DropsRawHTML(t *testing.T) {
	got := string(PoemHTML("<script>alert(1)</script>\nquiet pond"))
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML leaked into output: %q", got)
	}
	if !strings.Contains(got, "quiet pond") {
		t.Errorf("text lost: %q", got)
	}
}

func TestPoemHTML_Empty(t *testing.T) {
	if got := PoemHTML("  \n "); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"ocean":      "Ocean",
		"deep OCEAN": "Deep ocean",
		"élan":       "Élan",
		"42 trees":   "42 trees",
	}
	for in, want := range tests {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
