// Package debug prints values into an HTTP response or terminal for ad-hoc
// inspection. It is not meant for production error paths.
package debug

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// TerminatedMarker is written after the dump when the process is stopped.
const TerminatedMarker = "<br>Terminated\n"

var dumpConfig = spew.ConfigState{
	Indent:                  "    ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dumper writes dumps to w and stops the process through exit.
type Dumper struct {
	w    io.Writer
	exit func(int)
}

// NewDumper returns a Dumper writing to w. A nil exit uses os.Exit.
func NewDumper(w io.Writer, exit func(int)) *Dumper {
	if w == nil {
		w = os.Stdout
	}
	if exit == nil {
		exit = os.Exit
	}
	return &Dumper{w: w, exit: exit}
}

// Dump writes v between <pre> tags. Maps, slices, arrays, structs and
// pointers are rendered as an indented tree; other values are printed as-is.
// When stop is true the terminated marker is written and the process exits
// with status 0.
func (d *Dumper) Dump(v any, stop bool) error {
	if _, err := io.WriteString(d.w, "<pre>"); err != nil {
		return err
	}
	if isComposite(v) {
		dumpConfig.Fdump(d.w, v)
	} else if _, err := fmt.Fprint(d.w, v); err != nil {
		return err
	}
	if _, err := io.WriteString(d.w, "</pre>"); err != nil {
		return err
	}

	if stop {
		_, _ = io.WriteString(d.w, TerminatedMarker)
		d.exit(0)
	}
	return nil
}

// Sdump returns the composite rendering used by Dump without the <pre> wrapper.
func Sdump(v any) string {
	if isComposite(v) {
		return dumpConfig.Sdump(v)
	}
	return fmt.Sprint(v)
}

// Dump writes v to w and, when stop is true, exits the process.
func Dump(w io.Writer, v any, stop bool) error {
	return NewDumper(w, nil).Dump(v, stop)
}

func isComposite(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer, reflect.Interface:
		return true
	default:
		return false
	}
}
