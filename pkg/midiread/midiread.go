// Package midiread reads a Standard MIDI File and yields, per track, the
// flat stream of note and time-signature events the transcription engine
// consumes. It never interprets musical meaning: pairing note-on/note-off
// events, building notation, and rendering LilyPond text are all out of
// scope here.
package midiread

import (
	"bytes"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// EventType classifies a track event for the transcription engine.
type EventType int

const (
	// Other is any event the engine ignores (program changes, control
	// changes, unrecognized meta events, ...).
	Other EventType = iota
	NoteOn
	NoteOff
	TimeSignature
)

// Event is one flattened track message.
type Event struct {
	Type EventType
	// TimeDelta is the tick delta since the previous event in the same
	// track (zero for the first event).
	TimeDelta uint32
	// Note and Velocity are populated for NoteOn/NoteOff.
	Note     uint8
	Velocity uint8
	// Numerator and Denominator are populated for TimeSignature.
	Numerator   uint8
	Denominator uint8
}

// Track is one track's ordered event stream.
type Track []Event

// File is a parsed Standard MIDI File: a file-level tick resolution and one
// Track per SMF track, track 0 first.
type File struct {
	TicksPerBeat uint32
	Tracks       []Track
}

// Read opens and parses path as a Standard MIDI File.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("midiread: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes raw Standard MIDI File bytes into a File.
func Parse(data []byte) (*File, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("midiread: parse SMF: %w", err)
	}

	ticksPerBeat := uint32(960)
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		ticksPerBeat = uint32(mt.Resolution())
	}

	file := &File{TicksPerBeat: ticksPerBeat, Tracks: make([]Track, 0, len(s.Tracks))}
	for _, track := range s.Tracks {
		file.Tracks = append(file.Tracks, parseTrack(track))
	}
	return file, nil
}

func parseTrack(track smf.Track) Track {
	events := make(Track, 0, len(track))
	for _, ev := range track {
		msg := []byte(ev.Message)
		delta := uint32(ev.Delta)

		if event, ok := parseNoteEvent(msg, delta); ok {
			events = append(events, event)
			continue
		}
		if event, ok := parseTimeSignature(msg, delta); ok {
			events = append(events, event)
			continue
		}
		events = append(events, Event{Type: Other, TimeDelta: delta})
	}
	return events
}

// parseNoteEvent recognizes raw Note On (0x9n) and Note Off (0x8n) status
// bytes directly, the same byte-level approach the converter's own MIDI
// reader uses rather than the library's typed accessors.
func parseNoteEvent(msg []byte, delta uint32) (Event, bool) {
	if len(msg) < 3 {
		return Event{}, false
	}
	status := msg[0] & 0xF0
	switch status {
	case 0x90:
		velocity := msg[2]
		typ := NoteOn
		if velocity == 0 {
			typ = NoteOff
		}
		return Event{Type: typ, TimeDelta: delta, Note: msg[1], Velocity: velocity}, true
	case 0x80:
		return Event{Type: NoteOff, TimeDelta: delta, Note: msg[1], Velocity: msg[2]}, true
	}
	return Event{}, false
}

// parseTimeSignature recognizes the meta time-signature event
// (0xFF 0x58 0x04 numerator denomPower clocksPerClick notated32ndPerBeat).
// denomPower expresses the denominator as a power of two.
func parseTimeSignature(msg []byte, delta uint32) (Event, bool) {
	if len(msg) < 5 || msg[0] != 0xFF || msg[1] != 0x58 {
		return Event{}, false
	}
	numerator := msg[3]
	denominator := uint8(1) << msg[4]
	return Event{Type: TimeSignature, TimeDelta: delta, Numerator: numerator, Denominator: denominator}, true
}
