package notation

import (
	"github.com/corymarsh/midi2ly/pkg/duration"
	"github.com/corymarsh/midi2ly/pkg/pitch"
)

// Note is a single pitched sound of a given duration.
type Note struct {
	Pitch    pitch.Pitch
	Duration duration.Duration
}

// NewNote constructs a Note.
func NewNote(p pitch.Pitch, d duration.Duration) Note {
	return Note{Pitch: p, Duration: d}
}

// Length reports the note's duration.
func (n Note) Length() duration.Duration { return n.Duration }

// Render emits the pitch text followed by the duration text, eliding the
// duration when it matches the previously rendered note or rest.
func (n Note) Render(ctx *Context) string {
	pitchText := ctx.renderPitch(n.Pitch)
	durationText, err := renderDuration(ctx, n.Duration, false)
	if err != nil {
		// Unrepresentable durations are handled upstream by substituting a
		// rest of the same length before the note ever reaches Render; this
		// is a defensive fallback that keeps output well-formed.
		durationText = ""
	}
	return pitchText + durationText
}
