package search

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"trimmed", "  star quest  ", "star quest"},
		{"collapsed", "star \t  quest\n2", "star quest 2"},
		{"unicode kept", "  ゼルダ の 伝説 ", "ゼルダ の 伝説"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeQuery(tt.in); got != tt.want {
				t.Errorf("NormalizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeQuery_CapsRunes(t *testing.T) {
	long := strings.Repeat("é", MaxQueryRunes+20)

	got := NormalizeQuery(long)
	if n := utf8.RuneCountInString(got); n != MaxQueryRunes {
		t.Errorf("rune count = %d, want %d", n, MaxQueryRunes)
	}
	if !utf8.ValidString(got) {
		t.Error("result is not valid UTF-8")
	}
}

func TestNormalizeQuery_NoTrailingSpaceAfterCut(t *testing.T) {
	in := strings.Repeat("a", MaxQueryRunes-1) + " tail"

	got := NormalizeQuery(in)
	if strings.HasSuffix(got, " ") {
		t.Errorf("expected no trailing space, got %q", got)
	}
}
