package routes

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPreviewText(t *testing.T) {
	if got := previewText("see you at the plot", 80); got != "see you at the plot" {
		t.Errorf("short text changed: %q", got)
	}

	exact := strings.Repeat("a", 80)
	if got := previewText(exact, 80); got != exact {
		t.Errorf("text at the limit changed: %q", got)
	}

	long := strings.Repeat("a", 100)
	if got := previewText(long, 80); got != strings.Repeat("a", 80)+"…" {
		t.Errorf("long text truncated wrong: %q", got)
	}
}

func TestPreviewTextMultiByte(t *testing.T) {
	// Each rune here is multiple bytes; a byte-index cut would split one.
	msg := strings.Repeat("héllo wörld 🌱 ", 20)
	got := previewText(msg, 80)

	if !utf8.ValidString(got) {
		t.Fatalf("preview is not valid UTF-8: %q", got)
	}
	if runes := []rune(got); len(runes) != 81 { // 80 + ellipsis
		t.Errorf("preview rune length = %d, want 81", len(runes))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated preview missing ellipsis: %q", got)
	}
}
