// Package pitch renders MIDI note numbers as LilyPond pitch names, both in
// absolute octave notation and relative to a moving reference pitch.
package pitch

import "strings"

// noteNames are the twelve sharp-spelled pitch classes. Enharmonic
// (flat) spelling is out of scope: all accidentals are sharp-only.
var noteNames = [12]string{"c", "cis", "d", "dis", "e", "f", "fis", "g", "gis", "a", "ais", "b"}

// middleC is MIDI note 60, rendered as "c'" in absolute mode.
const middleC = 60

// Pitch is a MIDI note number in [0, 127]. Equality and ordering are by
// numeric value; Pitch is immutable.
type Pitch uint8

// Name returns the bare, octave-less pitch class name ("c", "cis", ...).
func (p Pitch) Name() string {
	return noteNames[int(p)%12]
}

// RenderAbsolute renders p in absolute-octave mode: the pitch class name
// followed by ' repeated once per octave above the octave that starts at
// MIDI 48 (so middle C is "c'"), or , repeated once per octave below it.
func (p Pitch) RenderAbsolute() string {
	octave := int(p)/12 - 4
	mark := "'"
	if octave < 0 {
		mark = ","
	}
	return p.Name() + strings.Repeat(mark, abs(octave))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// RelativeContext tracks the moving reference pitch used by relative-octave
// rendering. The zero value is not ready to use; call NewRelativeContext.
type RelativeContext struct {
	reference Pitch
}

// NewRelativeContext creates a relative-pitch context whose initial
// reference is middle C (MIDI 60), the LilyPond default.
func NewRelativeContext() *RelativeContext {
	return &RelativeContext{reference: middleC}
}

// Reset returns the reference pitch to middle C, as happens at the start of
// each new staff.
func (c *RelativeContext) Reset() {
	c.reference = middleC
}

// Render renders p relative to the context's current reference pitch,
// emitting "," when p is more than five semitones below the reference and
// "'" when it is more than six semitones above (at most one mark), then
// updates the reference to p.
func (c *RelativeContext) Render(p Pitch) string {
	mark := ""
	ref := int(c.reference)
	cur := int(p)
	if ref-cur > 5 {
		mark = ","
	} else if cur-ref > 6 {
		mark = "'"
	}
	c.reference = p
	return p.Name() + mark
}

// SetReference overrides the reference pitch directly, used when a chord's
// lowest pitch (rather than the last-rendered pitch) must become the new
// reference.
func (c *RelativeContext) SetReference(p Pitch) {
	c.reference = p
}

// Clone returns an independent copy of the context, used when several
// voices must each render starting from the same reference pitch without
// one voice's rendering affecting another's.
func (c *RelativeContext) Clone() *RelativeContext {
	clone := *c
	return &clone
}
