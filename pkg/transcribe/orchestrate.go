package transcribe

import (
	"fmt"

	"github.com/corymarsh/midi2ly/pkg/midiread"
	"github.com/corymarsh/midi2ly/pkg/notation"
)

// Options configures one transcription run.
type Options struct {
	// Relative selects relative-octave pitch rendering (the default).
	// Absolute mode is selected by setting this false.
	Relative bool
	// Quantize, when non-zero, snaps every note's start and end to this
	// many ticks before placement.
	Quantize uint64
	// Version is the LilyPond \version string stamped into the output.
	Version string
}

// DefaultOptions returns the CLI's default run configuration.
func DefaultOptions() Options {
	return Options{Relative: true, Version: "2.19.48"}
}

// Result is one transcription run's output: the rendered LilyPond text plus
// any non-fatal diagnostics encountered along the way.
type Result struct {
	LilyPond    string
	Diagnostics *Diagnostics
}

// Orchestrate drives one end-to-end transcription: track 0 is control-only
// (its time signature, if any, is recorded and applied file-wide); each
// subsequent track becomes its own Staff, built by a fresh Pairer/Placement
// pair; from the second staff onward, every staff built so far is wrapped
// into a single StaffGroup.
func Orchestrate(file *midiread.File, opts Options) Result {
	diag := &Diagnostics{}

	pairer := NewPairer()
	var ts *notation.TimeSignature
	if len(file.Tracks) > 0 {
		pairer.Pair(file.Tracks[0], 0, diag)
		ts = pairer.TimeSignature()
	}
	if ts == nil {
		diag.Add(Diagnostic{Kind: MissingTimeSignature, Track: 0})
		defaultTS := notation.DefaultTimeSignature
		ts = &defaultTS
	}

	doc := notation.NewFile(opts.Version)

	var staves []*notation.Staff
	for i := 1; i < len(file.Tracks); i++ {
		pairer.Reset()
		notes := pairer.Pair(file.Tracks[i], i, diag)
		notes = Quantize(notes, opts.Quantize)

		staff := notation.NewStaff(fmt.Sprintf("track%d", i))
		placement := NewPlacement(staff, file.TicksPerBeat, ts.Denominator)
		for _, n := range orderByEnd(notes) {
			placement.Place(n, i, diag)
		}

		staves = append(staves, staff)
		attach(doc, staves)
	}

	return Result{LilyPond: doc.Render(*ts, opts.Relative), Diagnostics: diag}
}

// attach places the accumulated staves into doc: a lone staff is added
// directly; from the second staff onward, every staff built so far is
// retroactively regrouped into a single StaffGroup.
func attach(doc *notation.File, staves []*notation.Staff) {
	doc.Tracks = nil
	if len(staves) == 1 {
		doc.Add(staves[0])
		return
	}
	group := notation.NewStaffGroup(staves...)
	doc.Add(group)
}

// orderByEnd sorts notes into the order their note-off events would arrive
// in a real MIDI stream: ascending by end tick, ties kept in their input
// order. The placement engine requires this delivery order.
func orderByEnd(notes []TickNote) []TickNote {
	ordered := make([]TickNote, len(notes))
	copy(ordered, notes)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].EndTicks < ordered[j-1].EndTicks; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}
