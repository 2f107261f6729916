package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Markup writes HTML fragments and keeps the first write error so a template
// body can be emitted without checking every call.
type Markup struct {
	w   io.Writer
	err error
}

// NewMarkup wraps w.
func NewMarkup(w io.Writer) *Markup {
	return &Markup{w: w}
}

// Raw writes s unescaped.
func (m *Markup) Raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

// Rawf writes a formatted string unescaped. Arguments must already be safe.
func (m *Markup) Rawf(format string, args ...any) {
	m.Raw(fmt.Sprintf(format, args...))
}

// Text writes s with HTML escaping.
func (m *Markup) Text(s string) {
	m.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (m *Markup) Attr(name, value string) {
	m.Raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

// Component renders c in place.
func (m *Markup) Component(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

// Err returns the first error encountered.
func (m *Markup) Err() error {
	return m.err
}

// Func adapts a markup body into a templ component.
func Func(body func(ctx context.Context, m *Markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(w)
		body(ctx, m)
		return m.Err()
	})
}
