package ui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "Own your story", 20, "Own your story"},
		{"breaks at spaces", "Own your story today", 10, "Own your\nstory\ntoday"},
		{"collapses whitespace", "  Own   your\n story ", 20, "Own your story"},
		{"empty", "   ", 10, ""},
		{"zero width leaves text", "Own your story", 0, "Own your story"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); got != tt.want {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapTextBreaksLongWords(t *testing.T) {
	got := wrapText("see https://calendly.com/monicachetalaine/discovery", 16)
	for _, line := range strings.Split(got, "\n") {
		if w := xansi.StringWidth(line); w > 16 {
			t.Errorf("Line %q is %d cells wide, want at most 16", line, w)
		}
	}
	flat := strings.NewReplacer("\n", "", " ", "").Replace(got)
	if flat != "seehttps://calendly.com/monicachetalaine/discovery" {
		t.Errorf("Expected no characters lost, got %q", got)
	}
}

func TestWrapTextWithPrefix(t *testing.T) {
	got := wrapTextWithPrefix("Own your story today", 12, "> ", "  ")
	want := "> Own your\n  story\n  today"
	if got != want {
		t.Errorf("wrapTextWithPrefix() = %q, want %q", got, want)
	}
}
