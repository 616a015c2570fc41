package notation

import (
	"strings"

	"github.com/corymarsh/midi2ly/pkg/duration"
)

// StaffGroup is a LilyPond "\new StaffGroup << ... >>" block binding several
// staves together with a shared brace, used by the orchestrator once a file
// yields two or more staves (one staff per MIDI track after the control
// track).
type StaffGroup struct {
	Staves []*Staff
}

// NewStaffGroup builds a StaffGroup from its staves.
func NewStaffGroup(staves ...*Staff) *StaffGroup {
	return &StaffGroup{Staves: staves}
}

// Length reports the longest staff's length. Staves within a group are not
// padded to equal length.
func (g *StaffGroup) Length() duration.Duration {
	longest := duration.Zero
	for _, s := range g.Staves {
		if l := s.Length(); l.Cmp(longest) > 0 {
			longest = l
		}
	}
	return longest
}

// Render renders each staff independently, each getting its own reset
// per-staff context state, wrapped in "\new StaffGroup << ... >>".
func (g *StaffGroup) Render(ctx *Context) string {
	parts := make([]string, len(g.Staves))
	for i, s := range g.Staves {
		parts[i] = s.Render(ctx)
	}
	return "\\new StaffGroup <<\n" + strings.Join(parts, "\n\n") + "\n>>"
}
