package transcribe

import "fmt"

// Kind identifies one of the four recoverable error conditions a
// transcription run can encounter. None of them aborts the run; each is
// handled by its stated policy and recorded in a Diagnostics slice.
type Kind int

const (
	// UnpairedNoteOff is a note-off for a pitch with no matching open
	// note-on. The event is dropped; track processing continues.
	UnpairedNoteOff Kind = iota
	// UnterminatedNote is a pitch still active when its track ends. The
	// note is dropped.
	UnterminatedNote
	// UnrepresentableDuration is a duration whose decomposition search
	// failed. The offending note is replaced with a rest of the same
	// length.
	UnrepresentableDuration
	// MissingTimeSignature is a track whose control track carried no
	// time-signature event. Policy: default to 4/4.
	MissingTimeSignature
)

func (k Kind) String() string {
	switch k {
	case UnpairedNoteOff:
		return "unpaired note-off"
	case UnterminatedNote:
		return "unterminated note"
	case UnrepresentableDuration:
		return "unrepresentable duration"
	case MissingTimeSignature:
		return "missing time signature"
	default:
		return "unknown"
	}
}

// Diagnostic is one recorded, non-fatal problem encountered while
// transcribing a track.
type Diagnostic struct {
	Kind  Kind
	Track int
	// Pitch is populated for UnpairedNoteOff and UnterminatedNote.
	Pitch uint8
	// Err wraps any underlying cause, nil for purely structural kinds.
	Err error
}

func (d Diagnostic) Error() string {
	if d.Err != nil {
		return fmt.Sprintf("track %d: %s (pitch %d): %v", d.Track, d.Kind, d.Pitch, d.Err)
	}
	return fmt.Sprintf("track %d: %s (pitch %d)", d.Track, d.Kind, d.Pitch)
}

// Diagnostics accumulates every Diagnostic raised during one transcription
// run, in the order they were observed. It plays the same collecting role
// the converter's own ConversionResult.Error field plays for the MIDI
// converter, generalized to carry more than one problem per run.
type Diagnostics struct {
	items []Diagnostic
}

// Add appends one diagnostic.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.items = append(d.items, diag)
}

// Items returns every recorded diagnostic, in order.
func (d *Diagnostics) Items() []Diagnostic {
	return d.items
}

// Empty reports whether no diagnostics were recorded.
func (d *Diagnostics) Empty() bool {
	return len(d.items) == 0
}
