package notation

import (
	"sort"
	"strings"

	"github.com/corymarsh/midi2ly/pkg/duration"
	"github.com/corymarsh/midi2ly/pkg/pitch"
)

// Chord is two or more simultaneously sounding pitches sharing one
// duration. Pitches are stored as a set and always rendered ascending.
type Chord struct {
	pitches  map[pitch.Pitch]struct{}
	Duration duration.Duration
}

// NewChord builds a Chord from a slice of pitches, deduplicating into a set.
// Precondition (caller's responsibility): len(pitches) >= 2 after dedup.
func NewChord(pitches []pitch.Pitch, d duration.Duration) Chord {
	set := make(map[pitch.Pitch]struct{}, len(pitches))
	for _, p := range pitches {
		set[p] = struct{}{}
	}
	return Chord{pitches: set, Duration: d}
}

// ConstructChord merges two chord-or-note sources (each either a Note or a
// Chord) into one Chord, unioning their pitch sets. Precondition:
// a.Length() == b.Length(). The result is commutative in its pitch set:
// ConstructChord(a, b) and ConstructChord(b, a) contain identical pitches.
func ConstructChord(a, b Node) Chord {
	set := make(map[pitch.Pitch]struct{})
	var d duration.Duration
	addPitches := func(n Node) {
		switch v := n.(type) {
		case Note:
			set[v.Pitch] = struct{}{}
			d = v.Duration
		case Chord:
			for p := range v.pitches {
				set[p] = struct{}{}
			}
			d = v.Duration
		}
	}
	addPitches(a)
	addPitches(b)
	return Chord{pitches: set, Duration: d}
}

// SortedPitches returns the chord's pitches in ascending order.
func (c Chord) SortedPitches() []pitch.Pitch {
	out := make([]pitch.Pitch, 0, len(c.pitches))
	for p := range c.pitches {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Length reports the chord's shared duration.
func (c Chord) Length() duration.Duration { return c.Duration }

// Render emits "<p1 p2 ...>" (ascending) followed by the duration text.
func (c Chord) Render(ctx *Context) string {
	sorted := c.SortedPitches()
	rendered := make([]string, len(sorted))
	for i, p := range sorted {
		rendered[i] = ctx.renderPitch(p)
	}
	if ctx.Relative && len(sorted) > 0 {
		// The chord's reference pitch for subsequent notes is its lowest
		// pitch, not whichever pitch happened to render last within it.
		ctx.relativeSetReference(sorted[0])
	}

	durationText, err := renderDuration(ctx, c.Duration, false)
	if err != nil {
		durationText = ""
	}

	return "<" + strings.Join(rendered, " ") + ">" + durationText
}
