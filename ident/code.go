package ident

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MrEthical07/goHelper/internal"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cast"
)

// SegmentType selects how a Segment is rendered.
type SegmentType string

const (
	// SegmentPrefix renders Value upper-cased.
	SegmentPrefix SegmentType = "prefix"
	// SegmentNumber renders a random integer with exactly Length digits.
	SegmentNumber SegmentType = "number"
	// SegmentAlpha renders Length characters from a shuffled A-Z0-9 alphabet.
	SegmentAlpha SegmentType = "alpha"
	// SegmentDate renders the current date using the Format pattern.
	SegmentDate SegmentType = "date"
)

const (
	// DefaultSeparator joins segments in Code.
	DefaultSeparator = "-"
	// DefaultNumberLength is used by number segments without a Length.
	DefaultNumberLength = 6
	// DefaultAlphaLength is used by alpha segments without a Length.
	DefaultAlphaLength = 4
	// DefaultDateFormat is used by date segments without a Format (YYYYMMDD).
	DefaultDateFormat = "Ymd"

	alphaAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Segment describes one part of a generated code. Length and Format are
// optional; zero values select the per-type defaults.
type Segment struct {
	Type   SegmentType `json:"type" toml:"type"`
	Value  string      `json:"value,omitempty" toml:"value"`
	Length int         `json:"length,omitempty" toml:"length"`
	Format string      `json:"format,omitempty" toml:"format"`
}

// UnmarshalJSON accepts loosely typed segment objects: length may be a number
// or a numeric string, and value may be any scalar.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Segment{
		Type:   SegmentType(cast.ToString(raw["type"])),
		Value:  cast.ToString(raw["value"]),
		Format: cast.ToString(raw["format"]),
	}
	if l, ok := raw["length"]; ok && l != nil {
		n, err := cast.ToIntE(l)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidLength, err)
		}
		out.Length = n
	}

	*s = out
	return nil
}

// ParseSegments decodes a JSON array of segment objects.
func ParseSegments(data []byte) ([]Segment, error) {
	var segments []Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// Generator renders structured codes. Date segments read the generator's clock.
type Generator struct {
	clock clockwork.Clock
}

// NewGenerator returns a Generator using clock, or the wall clock when nil.
func NewGenerator(clock clockwork.Clock) *Generator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{clock: clock}
}

// Code renders segments in order and joins them with DefaultSeparator.
func (g *Generator) Code(segments []Segment) (string, error) {
	return g.CodeWithSeparator(segments, DefaultSeparator)
}

// CodeWithSeparator renders segments in order and joins them with sep.
// Segments with an unknown type produce nothing.
//
// Example: prefix "ord", number length 4, date "Ymd" with "-" yields
// "ORD-4821-20261015".
func (g *Generator) CodeWithSeparator(segments []Segment, sep string) (string, error) {
	parts := make([]string, 0, len(segments))

	for i, seg := range segments {
		if seg.Length < 0 {
			return "", fmt.Errorf("%w: segment %d has length %d", ErrInvalidLength, i, seg.Length)
		}

		switch seg.Type {
		case SegmentPrefix:
			parts = append(parts, strings.ToUpper(seg.Value))

		case SegmentNumber:
			n, err := internal.RandomNumber(orDefault(seg.Length, DefaultNumberLength))
			if err != nil {
				return "", err
			}
			parts = append(parts, n)

		case SegmentAlpha:
			s, err := internal.ShuffleTruncate(alphaAlphabet, orDefault(seg.Length, DefaultAlphaLength))
			if err != nil {
				return "", err
			}
			parts = append(parts, s)

		case SegmentDate:
			format := seg.Format
			if format == "" {
				format = DefaultDateFormat
			}
			parts = append(parts, FormatDate(g.clock.Now(), format))
		}
	}

	return strings.Join(parts, sep), nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

var defaultGenerator = NewGenerator(nil)

// Code renders segments with the wall clock and DefaultSeparator.
func Code(segments []Segment) (string, error) {
	return defaultGenerator.Code(segments)
}

// CodeWithSeparator renders segments with the wall clock and sep.
func CodeWithSeparator(segments []Segment, sep string) (string, error) {
	return defaultGenerator.CodeWithSeparator(segments, sep)
}
