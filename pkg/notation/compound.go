package notation

import (
	"strings"

	"github.com/corymarsh/midi2ly/pkg/duration"
	"github.com/corymarsh/midi2ly/pkg/pitch"
)

// Compound is a brace-delimited container of sequentially played children.
// It owns its children exclusively; the tree is acyclic.
type Compound struct {
	children []Node
}

// NewCompound builds an empty Compound.
func NewCompound() *Compound {
	return &Compound{}
}

// Add appends a child.
func (c *Compound) Add(child Node) {
	c.children = append(c.children, child)
}

// Pop removes and returns the last child, or nil if empty.
func (c *Compound) Pop() Node {
	if len(c.children) == 0 {
		return nil
	}
	last := c.children[len(c.children)-1]
	c.children = c.children[:len(c.children)-1]
	return last
}

// Last returns the last child without removing it, or nil if empty.
func (c *Compound) Last() Node {
	if len(c.children) == 0 {
		return nil
	}
	return c.children[len(c.children)-1]
}

// Children returns the compound's children. The returned slice must not be
// mutated by the caller.
func (c *Compound) Children() []Node { return c.children }

// Length returns the sum of every child's length.
func (c *Compound) Length() duration.Duration {
	total := duration.Zero
	for _, child := range c.children {
		total = total.Add(child.Length())
	}
	return total
}

// SplitAt removes and returns, as a new Compound, the suffix of children
// starting with the first child whose cumulative end exceeds pos; the
// prefix is left in place. If pos >= the compound's total length, SplitAt
// returns nil and leaves the compound unchanged. No child is itself split;
// callers must ensure pos lies on a child boundary.
func (c *Compound) SplitAt(pos duration.Position) *Compound {
	length := duration.Zero
	for i, child := range c.children {
		length = length.Add(child.Length())
		if length.Cmp(pos) > 0 {
			suffix := NewCompound()
			suffix.children = append(suffix.children, c.children[i:]...)
			c.children = c.children[:i]
			return suffix
		}
	}
	return nil
}

// Merge appends another compound's children to this one's, in place.
func (c *Compound) Merge(other *Compound) {
	c.children = append(c.children, other.children...)
}

// Pitches returns the set of distinct pitches sounding anywhere within the
// compound, recursing through nested Compounds and Polyphonic voices.
func (c *Compound) Pitches() map[pitch.Pitch]struct{} {
	set := make(map[pitch.Pitch]struct{})
	collectPitches(c.children, set)
	return set
}

func collectPitches(children []Node, set map[pitch.Pitch]struct{}) {
	for _, child := range children {
		switch v := child.(type) {
		case Note:
			set[v.Pitch] = struct{}{}
		case Chord:
			for p := range v.pitches {
				set[p] = struct{}{}
			}
		case *Compound:
			collectPitches(v.children, set)
		case *Staff:
			collectPitches(v.Compound.children, set)
		case *Polyphonic:
			for _, voice := range v.voices {
				collectPitches(voice.children, set)
			}
		}
	}
}

// LowestPitch returns the lowest sounding pitch, defaulting to 108 (an
// empty staff never claims a bass clef).
func (c *Compound) LowestPitch() pitch.Pitch {
	lowest := pitch.Pitch(108)
	found := false
	for p := range c.Pitches() {
		if !found || p < lowest {
			lowest = p
			found = true
		}
	}
	return lowest
}

// HighestPitch returns the highest sounding pitch, defaulting to 0.
func (c *Compound) HighestPitch() pitch.Pitch {
	highest := pitch.Pitch(0)
	for p := range c.Pitches() {
		if p > highest {
			highest = p
		}
	}
	return highest
}

// Clef returns "bass" when the lowest pitch is below MIDI 55, otherwise ""
// (treble is implicit and never printed).
func (c *Compound) Clef() string {
	if c.LowestPitch() < 55 {
		return "bass"
	}
	return ""
}

// Render renders the compound as a plain (non-top-level) brace expression,
// used for Polyphonic voices and any nested sub-expression.
func (c *Compound) Render(ctx *Context) string {
	return c.renderBody(ctx, false)
}

// RenderTopLevel renders the compound preceded by "\relative c' " when the
// context is in relative mode, used for a Staff or a top-level compound
// directly attached to a File.
func (c *Compound) RenderTopLevel(ctx *Context) string {
	return c.renderBody(ctx, true)
}

func (c *Compound) renderBody(ctx *Context, topLevel bool) string {
	var sb strings.Builder

	if topLevel && ctx.Relative {
		ctx.relative.Reset()
		sb.WriteString("\\relative c' ")
	}

	sb.WriteString("{\n")

	if clef := c.Clef(); clef != "" {
		sb.WriteString("\\clef " + clef + "\n")
	}

	for _, child := range c.children {
		sb.WriteString(child.Render(ctx))
		sb.WriteString(" ")
		if ctx.atMeasureBoundary() {
			sb.WriteString("|\n")
		}
	}

	sb.WriteString("}")
	return sb.String()
}
