package internal

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestRandomNumberWidth(t *testing.T) {
	for width := 1; width <= 24; width++ {
		for i := 0; i < 50; i++ {
			n, err := RandomNumber(width)
			if err != nil {
				t.Fatalf("width %d: %v", width, err)
			}
			if len(n) != width {
				t.Fatalf("width %d: got %q", width, n)
			}
			if width > 1 && n[0] == '0' {
				t.Fatalf("width %d: leading zero in %q", width, n)
			}
		}
	}
}

func TestRandomNumberRejectsNonPositiveWidth(t *testing.T) {
	if _, err := RandomNumber(0); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	out, err := Shuffle(alphabet)
	if err != nil {
		t.Fatalf("shuffle: %v", err)
	}
	if sortString(out) != sortString(alphabet) {
		t.Fatalf("shuffle changed the multiset: %q", out)
	}
}

func TestShuffleTruncateCapsAtAlphabet(t *testing.T) {
	out, err := ShuffleTruncate("abc", 10)
	if err != nil {
		t.Fatalf("shuffle truncate: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 chars, got %q", out)
	}
	empty, err := ShuffleTruncate("abc", 0)
	if err != nil || empty != "" {
		t.Fatalf("expected empty output, got %q err=%v", empty, err)
	}
}

func TestRandomBytesLength(t *testing.T) {
	b, err := RandomBytes(16)
	if err != nil {
		t.Fatalf("random bytes: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(b))
	}
}

func sortString(s string) string {
	parts := strings.Split(s, "")
	sort.Strings(parts)
	return strings.Join(parts, "")
}
