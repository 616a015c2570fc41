package notation

import (
	"github.com/corymarsh/midi2ly/pkg/duration"
	"github.com/corymarsh/midi2ly/pkg/pitch"
)

// Context is the render context threaded through a pre-order walk of the
// notation tree. It tracks the running position within the current staff,
// the moving reference pitch for relative-octave rendering, and the
// previous duration for the same-duration elision rule.
type Context struct {
	Position         duration.Position
	TimeSignature    TimeSignature
	Relative         bool
	relative         *pitch.RelativeContext
	previousDuration *duration.Duration
	haveDuration     bool
}

// NewContext builds a render context for a time signature, at position zero,
// in relative pitch mode when relative is true and absolute mode otherwise.
func NewContext(ts TimeSignature, relative bool) *Context {
	return &Context{
		Position:      duration.Zero,
		TimeSignature: ts,
		Relative:      relative,
		relative:      pitch.NewRelativeContext(),
	}
}

// measureLength returns one full measure as a beat-fraction of the whole
// note: numerator * (1/denominator).
func (c *Context) measureLength() duration.Duration {
	return duration.New(int64(c.TimeSignature.Numerator), int64(c.TimeSignature.Denominator))
}

// resetStaff clears the per-staff render state: position, reference pitch,
// and the elision tracker. Called when a Staff begins rendering.
func (c *Context) resetStaff() {
	c.Position = duration.Zero
	c.relative.Reset()
	c.previousDuration = nil
	c.haveDuration = false
}

// renderPitch renders p in whichever octave mode the context is set to.
func (c *Context) renderPitch(p pitch.Pitch) string {
	if c.Relative {
		return c.relative.Render(p)
	}
	return p.RenderAbsolute()
}

// relativeSetReference overrides the relative-mode reference pitch
// directly, used after rendering a chord so the next note compares against
// the chord's lowest pitch rather than whichever pitch rendered last.
func (c *Context) relativeSetReference(p pitch.Pitch) {
	c.relative.SetReference(p)
}

// atMeasureBoundary reports whether the current position lands exactly on
// an integer multiple of one measure, the condition under which a bar
// check is emitted.
func (c *Context) atMeasureBoundary() bool {
	m := c.measureLength()
	if m.Sign() <= 0 {
		return false
	}
	return c.Position.Mod(m).Sign() == 0
}
