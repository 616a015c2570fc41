package notation

import (
	"sort"
	"strings"

	"github.com/corymarsh/midi2ly/pkg/duration"
)

// Polyphonic is a LilyPond "<< ... \\ ... >>" block: two or more voices
// sounding over the same span, each voice itself a sequential Compound.
// All voices start at the same position and the block's length is the
// longest voice's length. Shorter voices are not padded with trailing
// rests; such a voice renders as is and ends before the block boundary.
type Polyphonic struct {
	voices []*Compound
}

// NewPolyphonic builds an empty Polyphonic block.
func NewPolyphonic() *Polyphonic {
	return &Polyphonic{}
}

// AddVoice appends a new voice, returning its index for later reference by
// the placement engine (so it can keep appending to the same open voice).
func (p *Polyphonic) AddVoice(c *Compound) int {
	p.voices = append(p.voices, c)
	return len(p.voices) - 1
}

// Voice returns the voice at index i.
func (p *Polyphonic) Voice(i int) *Compound {
	return p.voices[i]
}

// Voices returns every voice. The returned slice must not be mutated.
func (p *Polyphonic) Voices() []*Compound {
	return p.voices
}

// IsBalanced reports whether the block has more than one voice and every
// voice shares the same length, the condition under which the placement
// engine closes an open polyphonic block.
func (p *Polyphonic) IsBalanced() bool {
	if len(p.voices) < 2 {
		return false
	}
	length := p.voices[0].Length()
	for _, v := range p.voices[1:] {
		if v.Length().Cmp(length) != 0 {
			return false
		}
	}
	return true
}

// Merge appends another block's voices pairwise onto this one's existing
// voices (the trailing portion of each, in order). The placement engine
// does not call it: a trailing block is reused by appending to its voices
// directly. Precondition:
// p.IsBalanced(). Extra voices in other beyond p's voice count are dropped,
// matching a simple first-come voice pairing.
func (p *Polyphonic) Merge(other *Polyphonic) {
	for i, voice := range p.voices {
		if i >= len(other.voices) {
			break
		}
		voice.Merge(other.voices[i])
	}
}

// Length returns the longest voice's length.
func (p *Polyphonic) Length() duration.Duration {
	longest := duration.Zero
	for _, v := range p.voices {
		if l := v.Length(); l.Cmp(longest) > 0 {
			longest = l
		}
	}
	return longest
}

// Render renders each voice from the same starting position, restoring the
// context's running position to start+Length() afterward. The original
// source left this restoration as dead, unreachable code; this performs it,
// since without it the context position would reflect only the last voice
// rendered rather than the block's true end. Voices are serialized sorted
// by descending average pitch, topmost voice first; ties keep their
// original relative order.
func (p *Polyphonic) Render(ctx *Context) string {
	start := ctx.Position
	startRef := ctx.relative

	ordered := make([]*Compound, len(p.voices))
	copy(ordered, p.voices)
	sort.SliceStable(ordered, func(i, j int) bool {
		return averagePitch(ordered[i]) > averagePitch(ordered[j])
	})

	parts := make([]string, len(ordered))
	for i, voice := range ordered {
		ctx.Position = start
		ctx.relative = startRef.Clone()
		parts[i] = voice.Render(ctx)
	}
	ctx.Position = start.Add(p.Length())
	return "<<\n" + strings.Join(parts, "\n\\\\\n") + "\n>>"
}

// averagePitch returns the mean MIDI pitch sounding in a voice, used only to
// order voices for serialization; an empty voice sorts last.
func averagePitch(c *Compound) float64 {
	pitches := c.Pitches()
	if len(pitches) == 0 {
		return -1
	}
	sum := 0
	for p := range pitches {
		sum += int(p)
	}
	return float64(sum) / float64(len(pitches))
}
