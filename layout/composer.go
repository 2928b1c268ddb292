// Package layout composes pages from ordered html/template fragments and
// issues the application's route redirects.
//
// A page is a list of fragment names. Each name resolves to
// <dir><name><ext> (defaults "core/views/" and ".html") and is executed in
// order against one explicit data value; nothing is injected into template
// scope other than that value.
package layout

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"sync"
)

const (
	DefaultDir       = "core/views/"
	DefaultExtension = ".html"
)

// ErrInvalidFragments is returned when the fragment list is nil.
var ErrInvalidFragments = errors.New("invalid fragment collection")

// ErrUnknownLayout is returned by Render for a name never passed to Define.
var ErrUnknownLayout = errors.New("unknown layout")

// Option configures a Composer.
type Option func(*Composer)

// WithDir sets the directory used when Compose is called with an empty dir.
func WithDir(dir string) Option {
	return func(c *Composer) {
		if dir != "" {
			c.dir = dir
		}
	}
}

// WithExtension sets the fragment file extension, dot included.
func WithExtension(ext string) Option {
	return func(c *Composer) {
		c.ext = ext
	}
}

// WithFuncs makes funcs available to every fragment.
func WithFuncs(funcs template.FuncMap) Option {
	return func(c *Composer) {
		c.funcs = funcs
	}
}

// WithObserver registers fn to be called with the fragment count of every
// successful composition.
func WithObserver(fn func(fragments int)) Option {
	return func(c *Composer) {
		c.observe = fn
	}
}

// Composer renders fragment lists. It is safe for concurrent use.
type Composer struct {
	dir     string
	ext     string
	funcs   template.FuncMap
	observe func(int)

	mu      sync.RWMutex
	layouts map[string][]string
}

// NewComposer returns a Composer reading fragments from DefaultDir.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		dir:     DefaultDir,
		ext:     DefaultExtension,
		layouts: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the default fragment directory.
func (c *Composer) Dir() string {
	return c.dir
}

// Compose executes fragments in order into w. An empty dir uses the
// Composer's default. A fragment already rendered in this call is skipped.
// Output is buffered, so nothing reaches w when any fragment fails.
func (c *Composer) Compose(w io.Writer, fragments []string, dir string, data any) error {
	if fragments == nil {
		return ErrInvalidFragments
	}
	if dir == "" {
		dir = c.dir
	}

	var buf bytes.Buffer
	seen := make(map[string]struct{}, len(fragments))
	rendered := 0
	for _, name := range fragments {
		path := dir + name + c.ext
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}

		if err := c.execute(&buf, path, data); err != nil {
			return err
		}
		rendered++
	}

	if _, err := buf.WriteTo(w); err != nil {
		return err
	}
	if c.observe != nil {
		c.observe(rendered)
	}
	return nil
}

func (c *Composer) execute(w io.Writer, path string, data any) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("layout: read fragment %s: %w", path, err)
	}
	tmpl := template.New(path)
	if c.funcs != nil {
		tmpl = tmpl.Funcs(c.funcs)
	}
	tmpl, err = tmpl.Parse(string(src))
	if err != nil {
		return fmt.Errorf("layout: parse fragment %s: %w", path, err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("layout: execute fragment %s: %w", path, err)
	}
	return nil
}

// Define registers a named layout made of fragments.
func (c *Composer) Define(name string, fragments ...string) {
	c.mu.Lock()
	c.layouts[name] = append([]string(nil), fragments...)
	c.mu.Unlock()
}

// Render composes the layout registered under name from the default dir.
func (c *Composer) Render(w io.Writer, name string, data any) error {
	c.mu.RLock()
	fragments, ok := c.layouts[name]
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayout, name)
	}
	return c.Compose(w, fragments, "", data)
}
