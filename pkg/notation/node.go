// Package notation implements the notation-tree node types: a tagged
// variant of Note, Rest, Chord, Compound, Polyphonic, Staff, StaffGroup,
// TimeSignature, and Text, each answering Length() and Render(ctx).
package notation

import (
	"strings"

	"github.com/corymarsh/midi2ly/pkg/duration"
)

// Node is the shared interface of every notation-tree element.
type Node interface {
	// Length reports the node's duration as a fraction of a whole note.
	Length() duration.Duration
	// Render emits the node's LilyPond text, mutating ctx as a side effect
	// (advancing position, tracking reference pitch and elided durations).
	Render(ctx *Context) string
}

// splitAcrossMeasures divides a duration of `length` starting at `pos` into
// segments that each fit within a single measure of `measureLen`: a note
// that would cross a measure boundary is split into the head that exactly
// fills the remainder of the measure, followed by the tail (itself split
// again if it spans more than one further measure).
func splitAcrossMeasures(pos, length, measureLen duration.Duration) []duration.Duration {
	if measureLen.Sign() <= 0 {
		return []duration.Duration{length}
	}

	var segments []duration.Duration
	cur := pos
	remaining := length
	for {
		offset := cur.Mod(measureLen)
		available := measureLen.Sub(offset)
		if available.Sign() <= 0 {
			available = measureLen
		}
		if remaining.Cmp(available) <= 0 {
			segments = append(segments, remaining)
			return segments
		}
		segments = append(segments, available)
		remaining = remaining.Sub(available)
		cur = cur.Add(available)
	}
}

// renderDuration renders a node's full duration against ctx: it applies the
// same-duration elision rule (skipped when the duration had to be split
// across a bar, since the split already changes what is printed), advances
// ctx.Position by the full duration, and joins any bar-crossing segments
// with a tie and an inline bar check.
//
// asRest selects the rest-rendering form (ties replaced by repeated "r");
// otherwise the plain tied-note form is used.
func renderDuration(ctx *Context, full duration.Duration, asRest bool) (string, error) {
	segments := splitAcrossMeasures(ctx.Position, full, ctx.measureLength())

	elide := len(segments) == 1 && ctx.haveDuration && ctx.previousDuration != nil && full.Cmp(*ctx.previousDuration) == 0
	ctx.previousDuration = &full
	ctx.haveDuration = true

	if elide {
		for _, seg := range segments {
			ctx.Position = ctx.Position.Add(seg)
		}
		if asRest {
			return "r", nil
		}
		return "", nil
	}

	var parts []string
	for _, seg := range segments {
		text, err := seg.Render()
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
		ctx.Position = ctx.Position.Add(seg)
	}

	if asRest {
		// A rest cannot be tied: each internal tie within a segment becomes
		// a fresh "r", and a bar-crossing split becomes a fresh "r" too.
		for i, p := range parts {
			parts[i] = "r" + strings.ReplaceAll(p, "~ ", " r")
		}
		return strings.Join(parts, " |\n"), nil
	}
	return strings.Join(parts, "~ |\n"), nil
}
