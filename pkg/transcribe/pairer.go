package transcribe

import (
	"github.com/corymarsh/midi2ly/pkg/midiread"
	"github.com/corymarsh/midi2ly/pkg/notation"
	"github.com/corymarsh/midi2ly/pkg/pitch"
)

// TickNote is a positioned, pitched note expressed in raw ticks, the
// pairer's output before the active time signature resolves ticks into
// beat-fraction Durations.
type TickNote struct {
	StartTicks uint64
	EndTicks   uint64
	Pitch      pitch.Pitch
}

// Pairer converts one track's flat event stream into a slice of TickNotes,
// tracking which pitches are currently sounding and the running tick
// position. A Pairer is reused across tracks via Reset; the resolved time
// signature (if any) persists across Reset, so a later track's
// time-signature event never replaces the first one seen.
type Pairer struct {
	active        map[uint8]uint64
	position      uint64
	timeSignature *notation.TimeSignature
}

// NewPairer builds an empty Pairer.
func NewPairer() *Pairer {
	return &Pairer{active: make(map[uint8]uint64)}
}

// Reset clears per-track state (active notes and position) ahead of
// pairing a new track. The resolved time signature, if any, is preserved.
func (p *Pairer) Reset() {
	p.active = make(map[uint8]uint64)
	p.position = 0
}

// TimeSignature returns the first time signature encountered so far, or
// nil if none has been seen yet.
func (p *Pairer) TimeSignature() *notation.TimeSignature {
	return p.timeSignature
}

// Pair processes every event in track in order, advancing the running
// position by each event's delta, pairing note-on/note-off events into
// TickNotes, and recording the first time-signature event seen. Diagnostics
// for unpaired note-offs and, at end-of-track, unterminated notes are
// appended to diag tagged with trackIndex.
func (p *Pairer) Pair(track midiread.Track, trackIndex int, diag *Diagnostics) []TickNote {
	var notes []TickNote

	for _, event := range track {
		p.position += uint64(event.TimeDelta)

		switch event.Type {
		case midiread.NoteOn:
			p.active[event.Note] = p.position
		case midiread.NoteOff:
			start, ok := p.active[event.Note]
			if !ok {
				diag.Add(Diagnostic{Kind: UnpairedNoteOff, Track: trackIndex, Pitch: event.Note})
				continue
			}
			delete(p.active, event.Note)
			notes = append(notes, TickNote{StartTicks: start, EndTicks: p.position, Pitch: pitch.Pitch(event.Note)})
		case midiread.TimeSignature:
			if p.timeSignature == nil {
				ts := notation.TimeSignature{Numerator: event.Numerator, Denominator: event.Denominator}
				p.timeSignature = &ts
			}
		}
	}

	for note := range p.active {
		diag.Add(Diagnostic{Kind: UnterminatedNote, Track: trackIndex, Pitch: note})
	}

	return notes
}

// Quantize snaps every note's start and end to the nearest multiple of
// grid ticks. If a snapped note's end would no longer exceed its start, the
// end is pushed out to start+grid so the note never vanishes. grid <= 0
// disables quantization.
func Quantize(notes []TickNote, grid uint64) []TickNote {
	if grid == 0 {
		return notes
	}
	out := make([]TickNote, len(notes))
	for i, n := range notes {
		start := quantizeTick(n.StartTicks, grid)
		end := quantizeTick(n.EndTicks, grid)
		if end <= start {
			end = start + grid
		}
		out[i] = TickNote{StartTicks: start, EndTicks: end, Pitch: n.Pitch}
	}
	return out
}

func quantizeTick(tick, grid uint64) uint64 {
	half := grid / 2
	return ((tick + half) / grid) * grid
}
