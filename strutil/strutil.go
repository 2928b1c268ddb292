// Package strutil holds small string and map helpers used when preparing
// request input for storage or templates.
package strutil

import (
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/net/html"
)

// Clean removes markup tags, comments and doctype declarations from s and
// trims surrounding whitespace. Text between tags, including character
// references such as "&amp;", is kept verbatim.
//
// Elements whose content the HTML tokenizer treats as raw text (script,
// style, textarea, title, xmp, plaintext) lose their tags as well: stripping
// repeats until the output no longer changes.
func Clean(s string) string {
	out := stripOnce(s)
	for out != s {
		s = out
		out = stripOnce(s)
	}
	return out
}

// stripOnce returns the trimmed concatenation of every text token in s. The
// result is never longer than s, and equal only when s has nothing to strip.
func stripOnce(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))

	var b strings.Builder
	b.Grow(len(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader source can produce.
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Raw())
		}
	}
}

// Object is a keyed view over a map. It shares storage with the map it was
// created from: writes through either are visible in both.
type Object map[string]any

// ToObject returns m as an Object without copying or validating it.
func ToObject(m map[string]any) Object {
	return Object(m)
}

// Get returns the raw value for key.
func (o Object) Get(key string) any {
	return o[key]
}

// Has reports whether key is present, even with a nil value.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Set stores value under key.
func (o Object) Set(key string, value any) {
	o[key] = value
}

// String returns the value for key rendered as a string, "" when absent or
// not representable.
func (o Object) String(key string) string {
	return cast.ToString(o[key])
}

// Int returns the value for key as an int, 0 when absent or not numeric.
func (o Object) Int(key string) int {
	return cast.ToInt(o[key])
}

// Bool returns the value for key as a bool.
func (o Object) Bool(key string) bool {
	return cast.ToBool(o[key])
}

// Float returns the value for key as a float64.
func (o Object) Float(key string) float64 {
	return cast.ToFloat64(o[key])
}

// Object returns the nested map under key as an Object, or nil.
func (o Object) Object(key string) Object {
	switch v := o[key].(type) {
	case Object:
		return v
	case map[string]any:
		return Object(v)
	default:
		m, err := cast.ToStringMapE(v)
		if err != nil {
			return nil
		}
		return Object(m)
	}
}

// Map returns the underlying map.
func (o Object) Map() map[string]any {
	return map[string]any(o)
}
