package pitch

import "testing"

func TestRenderAbsolute(t *testing.T) {
	tests := []struct {
		pitch Pitch
		want  string
	}{
		{0, "c,,,,"},
		{60, "c'"},
		{61, "cis'"},
		{72, "c''"},
		{48, "c"},
		{127, "g''''''"},
	}

	for _, tt := range tests {
		got := tt.pitch.RenderAbsolute()
		if got != tt.want {
			t.Errorf("Pitch(%d).RenderAbsolute() = %q, want %q", tt.pitch, got, tt.want)
		}
	}
}

// TestPitchRoundTripAbsolute verifies that every pitch in
// [0,127] renders to a distinct absolute name (name + octave marks), and
// that name is distinct for distinct pitches within a reasonable range.
func TestPitchRoundTripAbsolute(t *testing.T) {
	seen := make(map[string]Pitch)
	for p := 0; p <= 127; p++ {
		name := Pitch(p).RenderAbsolute()
		if prior, ok := seen[name]; ok {
			t.Fatalf("RenderAbsolute collision: pitch %d and %d both render %q", prior, p, name)
		}
		seen[name] = Pitch(p)
	}
}

func TestRelativeContext(t *testing.T) {
	c := NewRelativeContext()

	tests := []struct {
		pitch Pitch
		want  string
	}{
		{60, "c"},   // middle C, no mark, reference starts at 60
		{64, "e"},   // within a fifth, no mark
		{72, "c'"},  // more than six semitones above reference (64), step up
		{55, "g,"},  // more than a fifth below reference (72), step down
	}

	for _, tt := range tests {
		got := c.Render(tt.pitch)
		if got != tt.want {
			t.Errorf("Render(%d) = %q, want %q", tt.pitch, got, tt.want)
		}
	}
}

func TestRelativeContextResetAndClone(t *testing.T) {
	c := NewRelativeContext()
	c.Render(72)
	c.Reset()
	if got := c.Render(60); got != "c" {
		t.Errorf("after Reset, Render(60) = %q, want %q", got, "c")
	}

	c.SetReference(67)
	clone := c.Clone()
	if got := clone.Render(67); got != "g" {
		t.Errorf("Clone().Render(67) = %q, want %q", got, "g")
	}
}
