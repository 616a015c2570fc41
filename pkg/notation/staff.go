package notation

import (
	"fmt"

	"github.com/corymarsh/midi2ly/pkg/duration"
)

// Staff is one LilyPond \new Staff block: a named voice wrapping a single
// top-level Compound. It is the point at which the render context's
// per-staff state (position, relative-pitch reference, elision tracker) is
// reset, and the point at which "\relative c'" is attached when the context
// is in relative mode.
type Staff struct {
	Name     string
	Compound *Compound
}

// NewStaff builds an empty, named Staff.
func NewStaff(name string) *Staff {
	return &Staff{Name: name, Compound: NewCompound()}
}

// Add appends a child to the staff's body.
func (s *Staff) Add(child Node) {
	s.Compound.Add(child)
}

// Length reports the staff body's total duration.
func (s *Staff) Length() duration.Duration {
	return s.Compound.Length()
}

// Render resets the context's per-staff state, then emits
// `\new Staff = "<name>"` followed by the rendered body.
func (s *Staff) Render(ctx *Context) string {
	ctx.resetStaff()
	body := s.Compound.RenderTopLevel(ctx)
	return fmt.Sprintf("\\new Staff = %q %s", s.Name, body)
}
