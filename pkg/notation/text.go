package notation

import "github.com/corymarsh/midi2ly/pkg/duration"

// Text is a verbatim line of LilyPond source, for header blocks and similar
// boilerplate that doesn't belong to the musical tree proper. The
// orchestrator does not create Text nodes; the \version header is written
// by File.Render.
type Text struct {
	Value string
}

// NewText wraps a literal string as a Node.
func NewText(value string) Text {
	return Text{Value: value}
}

// Length is always zero: text markup consumes no musical time.
func (t Text) Length() duration.Duration {
	return duration.Zero
}

// Render emits the text verbatim.
func (t Text) Render(ctx *Context) string {
	return t.Value
}
