package transcribe

import (
	"github.com/corymarsh/midi2ly/pkg/duration"
	"github.com/corymarsh/midi2ly/pkg/notation"
)

// Placement attaches a chronologically-ordered stream of TickNotes onto one
// Staff, deciding for each whether it extends the staff sequentially, merges
// into a chord, or requires opening (or reusing) a polyphonic block. A
// Placement owns exactly one open Staff and, optionally, one open
// Polyphonic block within it, never an ambient or global pointer.
type Placement struct {
	staff        *notation.Staff
	open         *notation.Polyphonic
	ticksPerBeat uint32
	denominator  uint8
}

// NewPlacement builds a Placement engine targeting staff, converting ticks
// to beat-fraction Durations against ticksPerBeat and the resolved
// denominator.
func NewPlacement(staff *notation.Staff, ticksPerBeat uint32, denominator uint8) *Placement {
	return &Placement{staff: staff, ticksPerBeat: ticksPerBeat, denominator: denominator}
}

func (p *Placement) toDuration(ticks uint64) duration.Duration {
	return duration.FromTicks(int64(ticks), p.ticksPerBeat, p.denominator)
}

// Place converts one TickNote into a Note and attaches it to the staff.
// Durations that fail to decompose are reported as UnrepresentableDuration
// and the note is replaced by a rest of the same length; the failure is
// fatal only for that one note, never for the run.
func (p *Placement) Place(note TickNote, trackIndex int, diag *Diagnostics) {
	start := p.toDuration(note.StartTicks)
	length := p.toDuration(note.EndTicks - note.StartTicks)

	if _, err := length.Render(); err != nil {
		diag.Add(Diagnostic{Kind: UnrepresentableDuration, Track: trackIndex, Pitch: uint8(note.Pitch), Err: err})
		p.placeNode(p.staff.Compound, start, notation.NewRest(length))
		return
	}

	n := notation.NewNote(note.Pitch, length)
	if tryAppend(p.staff.Compound, start, n) {
		return
	}
	p.openOrReuse(start, n)
}

// placeNode performs a plain sequential append of an arbitrary Node
// (used for the UnrepresentableDuration fallback rest, which never
// chord-merges), padding with a leading rest if the staff hasn't yet
// reached start.
func (p *Placement) placeNode(e *notation.Compound, start duration.Position, n notation.Node) {
	length := e.Length()
	if start.Cmp(length) > 0 {
		e.Add(notation.NewRest(start.Sub(length)))
	}
	e.Add(n)
}

// tryAppend performs a sequential append to Compound e at position start.
// It either appends directly (padding with a rest if start is past e's
// current length), merges with e's last child into a chord (when durations
// and start positions agree), or rejects the note entirely.
func tryAppend(e *notation.Compound, start duration.Position, n notation.Note) bool {
	length := e.Length()

	if start.Cmp(length) >= 0 {
		if start.Cmp(length) > 0 {
			e.Add(notation.NewRest(start.Sub(length)))
		}
		e.Add(n)
		return true
	}

	last := e.Last()
	if last == nil {
		return false
	}
	prevDuration, ok := nodeDuration(last)
	if !ok {
		return false
	}
	prevStart := length.Sub(prevDuration)
	if prevStart.Cmp(start) > 0 {
		return false
	}
	if prevDuration.Cmp(n.Duration) != 0 {
		return false
	}

	e.Pop()
	e.Add(notation.ConstructChord(last, n))
	return true
}

// nodeDuration extracts a node's duration when it is a Note or Chord (the
// only two node kinds eligible for chord-merging); any other kind rejects
// the merge attempt.
func nodeDuration(n notation.Node) (duration.Duration, bool) {
	switch v := n.(type) {
	case notation.Note:
		return v.Duration, true
	case notation.Chord:
		return v.Duration, true
	}
	return duration.Zero, false
}

// openOrReuse is called once sequential append to the staff itself has
// failed. It reuses a trailing open Polyphonic block or opens a new one by
// splitting off the staff's trailing portion into the block's first voice,
// then tries every existing voice before finally opening a fresh one.
func (p *Placement) openOrReuse(start duration.Position, n notation.Note) {
	s := p.staff.Compound

	var poly *notation.Polyphonic
	if existing, ok := s.Last().(*notation.Polyphonic); ok {
		poly = existing
	} else {
		poly = notation.NewPolyphonic()
		suffix := s.SplitAt(start)
		first := notation.NewCompound()
		if suffix != nil {
			first.Merge(suffix)
		}
		poly.AddVoice(first)
		s.Add(poly)
	}
	p.open = poly

	base := s.Length().Sub(poly.Length())
	local := start.Sub(base)

	placed := false
	for _, voice := range poly.Voices() {
		if tryAppend(voice, local, n) {
			placed = true
			break
		}
	}

	if !placed {
		voice := notation.NewCompound()
		if local.Sign() > 0 {
			voice.Add(notation.NewRest(local))
		}
		voice.Add(n)
		poly.AddVoice(voice)
	}

	if poly.IsBalanced() {
		p.open = nil
	}
}
