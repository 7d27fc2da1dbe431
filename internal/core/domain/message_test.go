package domain

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPreview_ShortBodyUnchanged(t *testing.T) {
	if got := Preview("hello"); got != "hello" {
		t.Fatalf("unexpected preview: %q", got)
	}
}

func TestPreview_TruncatesByRunes(t *testing.T) {
	// A rupee sign is three bytes; byte-based slicing would cut one in half.
	body := strings.Repeat("₹", BodyPreviewLimit+10)
	got := Preview(body)

	if !utf8.ValidString(got) {
		t.Fatalf("preview is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != BodyPreviewLimit {
		t.Fatalf("expected %d runes, got %d", BodyPreviewLimit, n)
	}
}

func TestPreview_ExactLimitUnchanged(t *testing.T) {
	body := strings.Repeat("a", BodyPreviewLimit)
	if got := Preview(body); got != body {
		t.Fatalf("body at the limit should be untouched, got %q", got)
	}
}
