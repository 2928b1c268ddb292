package ident

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	rawIDPattern  = regexp.MustCompile(`^[0-9a-f]{32}$`)
	uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

func TestIDRaw(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id, err := ID(false)
		if err != nil {
			t.Fatalf("ID(false): %v", err)
		}
		if !rawIDPattern.MatchString(id) {
			t.Fatalf("unexpected raw id %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestIDVersionedVersionAndVariant(t *testing.T) {
	for i := 0; i < 10000; i++ {
		id, err := ID(true)
		if err != nil {
			t.Fatalf("ID(true): %v", err)
		}
		if !uuidV4Pattern.MatchString(id) {
			t.Fatalf("not a v4 uuid: %q", id)
		}
		hexOnly := strings.ReplaceAll(id, "-", "")
		if hexOnly[12] != '4' {
			t.Fatalf("version nibble of %q is %c", id, hexOnly[12])
		}
		if !strings.ContainsRune("89ab", rune(hexOnly[16])) {
			t.Fatalf("variant nibble of %q is %c", id, hexOnly[16])
		}
	}
}

func TestHashLengthAndAlphabet(t *testing.T) {
	h, err := Hash(0)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if len(h) != DefaultHashLength {
		t.Fatalf("default length: got %d", len(h))
	}

	for _, n := range []int{1, 8, 32, 124} {
		h, err := Hash(n)
		if err != nil {
			t.Fatalf("hash(%d): %v", n, err)
		}
		if len(h) != n {
			t.Fatalf("hash(%d) returned %d chars", n, len(h))
		}
		for _, r := range h {
			if !strings.ContainsRune(hashAlphabet, r) {
				t.Fatalf("unexpected rune %q", r)
			}
		}
	}

	long, err := Hash(500)
	if err != nil {
		t.Fatalf("hash(500): %v", err)
	}
	if len(long) != len(hashAlphabet) {
		t.Fatalf("expected cap at %d, got %d", len(hashAlphabet), len(long))
	}
}

func TestHashNeverRepeatsBeyondAlphabetMultiplicity(t *testing.T) {
	h, err := Hash(len(hashAlphabet))
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	counts := map[rune]int{}
	for _, r := range h {
		counts[r]++
	}
	for r, c := range counts {
		if c != 2 {
			t.Fatalf("rune %q appears %d times, want 2", r, c)
		}
	}
}

func TestCodeOrderNumberDate(t *testing.T) {
	g := NewGenerator(clockwork.NewFakeClockAt(time.Date(2026, time.October, 15, 8, 30, 0, 0, time.UTC)))
	pattern := regexp.MustCompile(`^ORD-\d{4}-\d{8}$`)

	for i := 0; i < 200; i++ {
		code, err := g.Code([]Segment{
			{Type: SegmentPrefix, Value: "ORD"},
			{Type: SegmentNumber, Length: 4},
			{Type: SegmentDate, Format: "Ymd"},
		})
		if err != nil {
			t.Fatalf("code: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("unexpected code %q", code)
		}
		if !strings.HasSuffix(code, "-20261015") {
			t.Fatalf("expected fake clock date in %q", code)
		}
		if code[4] == '0' {
			t.Fatalf("number segment has leading zero: %q", code)
		}
	}
}

func TestCodeDefaultsAndUnknownTypes(t *testing.T) {
	g := NewGenerator(clockwork.NewFakeClockAt(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)))
	code, err := g.CodeWithSeparator([]Segment{
		{Type: SegmentPrefix, Value: "inv"},
		{Type: "bogus", Value: "ignored"},
		{Type: SegmentNumber},
		{Type: SegmentAlpha},
		{Type: SegmentDate},
	}, "/")
	if err != nil {
		t.Fatalf("code: %v", err)
	}
	if !regexp.MustCompile(`^INV/[1-9]\d{5}/[A-Z0-9]{4}/20260102$`).MatchString(code) {
		t.Fatalf("unexpected code %q", code)
	}
}

func TestCodeEmptySeparatorAndEmptyInput(t *testing.T) {
	g := NewGenerator(nil)
	code, err := g.CodeWithSeparator([]Segment{{Type: SegmentPrefix, Value: "a"}, {Type: SegmentPrefix, Value: "b"}}, "")
	if err != nil {
		t.Fatalf("code: %v", err)
	}
	if code != "AB" {
		t.Fatalf("expected AB, got %q", code)
	}
	empty, err := g.Code(nil)
	if err != nil || empty != "" {
		t.Fatalf("expected empty code, got %q err=%v", empty, err)
	}
}

func TestCodeRejectsNegativeLength(t *testing.T) {
	_, err := Code([]Segment{{Type: SegmentNumber, Length: -1}})
	if !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestParseSegmentsLooseTypes(t *testing.T) {
	segments, err := ParseSegments([]byte(`[
		{"type": "prefix", "value": "tk"},
		{"type": "number", "length": "3"},
		{"type": "alpha", "length": 2},
		{"type": "date", "format": "y"}
	]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segments))
	}
	if segments[1].Length != 3 || segments[2].Length != 2 || segments[3].Format != "y" {
		t.Fatalf("unexpected segments %+v", segments)
	}

	if _, err := ParseSegments([]byte(`[{"type":"number","length":"four"}]`)); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength for non-numeric length, got %v", err)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)
	tests := map[string]string{
		"Ymd":         "20260307",
		"Y-m-d H:i:s": "2026-03-07 15:04:05",
		"d/m/y":       "07/03/26",
		"j n G":       "7 3 15",
		"g:i A":       "3:04 PM",
		"D, M":        "Sat, Mar",
		`\Y\m Y`:      "Ym 2026",
		"N":           "6",
	}
	for format, want := range tests {
		if got := FormatDate(ts, format); got != want {
			t.Fatalf("FormatDate(%q)=%q want %q", format, got, want)
		}
	}
}
