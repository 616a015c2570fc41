package notation

import (
	"testing"

	"github.com/corymarsh/midi2ly/pkg/duration"
	"github.com/corymarsh/midi2ly/pkg/pitch"
)

func quarter() duration.Duration { return duration.New(1, 4) }
func half() duration.Duration    { return duration.New(1, 2) }

// TestCompoundLength verifies that a Compound's length is the
// sum of its children's lengths after add/pop/split_at.
func TestCompoundLength(t *testing.T) {
	c := NewCompound()
	c.Add(NewNote(60, quarter()))
	c.Add(NewNote(62, quarter()))
	c.Add(NewRest(half()))

	want := duration.New(1, 1)
	if c.Length().Cmp(want) != 0 {
		t.Errorf("Length() = %d/%d, want 1/1", c.Length().Num(), c.Length().Denom())
	}

	c.Pop()
	want = duration.New(1, 2)
	if c.Length().Cmp(want) != 0 {
		t.Errorf("after Pop, Length() = %d/%d, want 1/2", c.Length().Num(), c.Length().Denom())
	}
}

// TestSplitAtCommutesWithLength verifies that E.length() +
// R.length() equals the original length after split_at.
func TestSplitAtCommutesWithLength(t *testing.T) {
	c := NewCompound()
	c.Add(NewNote(60, quarter()))
	c.Add(NewNote(62, quarter()))
	c.Add(NewNote(64, quarter()))
	c.Add(NewNote(65, quarter()))
	original := c.Length()

	suffix := c.SplitAt(duration.New(1, 2))
	if suffix == nil {
		t.Fatal("SplitAt returned nil, want a suffix")
	}

	total := c.Length().Add(suffix.Length())
	if total.Cmp(original) != 0 {
		t.Errorf("prefix+suffix length = %d/%d, want %d/%d", total.Num(), total.Denom(), original.Num(), original.Denom())
	}
	if len(c.Children()) != 2 || len(suffix.Children()) != 2 {
		t.Errorf("split at child boundary should yield 2/2 children, got %d/%d", len(c.Children()), len(suffix.Children()))
	}
}

func TestSplitAtPastEndReturnsNil(t *testing.T) {
	c := NewCompound()
	c.Add(NewNote(60, quarter()))
	if suffix := c.SplitAt(duration.New(1, 1)); suffix != nil {
		t.Errorf("SplitAt at/past total length = %v, want nil", suffix)
	}
}

// TestPolyphonicLength verifies that P.length() = max of voice
// lengths.
func TestPolyphonicLength(t *testing.T) {
	p := NewPolyphonic()
	v1 := NewCompound()
	v1.Add(NewNote(60, half()))
	v2 := NewCompound()
	v2.Add(NewNote(64, quarter()))
	v2.Add(NewNote(67, quarter()))
	p.AddVoice(v1)
	p.AddVoice(v2)

	want := half()
	if p.Length().Cmp(want) != 0 {
		t.Errorf("Polyphonic.Length() = %d/%d, want 1/2", p.Length().Num(), p.Length().Denom())
	}
	if !p.IsBalanced() {
		t.Error("voices of equal total length should report balanced")
	}
}

// TestConstructChordCommutative verifies that
// construct_chord(a, b) == construct_chord(b, a) in pitch-set terms.
func TestConstructChordCommutative(t *testing.T) {
	a := NewNote(60, quarter())
	b := NewNote(64, quarter())

	ab := ConstructChord(a, b)
	ba := ConstructChord(b, a)

	if len(ab.SortedPitches()) != len(ba.SortedPitches()) {
		t.Fatalf("pitch set sizes differ: %d vs %d", len(ab.SortedPitches()), len(ba.SortedPitches()))
	}
	for i, p := range ab.SortedPitches() {
		if ba.SortedPitches()[i] != p {
			t.Errorf("pitch set order differs at %d: %v vs %v", i, ab.SortedPitches(), ba.SortedPitches())
		}
	}
}

// TestChordPitchOrdering verifies that rendered chords list
// pitches strictly ascending.
func TestChordPitchOrdering(t *testing.T) {
	c := NewChord([]pitch.Pitch{67, 60, 64}, quarter())
	sorted := c.SortedPitches()
	for i := 1; i < len(sorted); i++ {
		if sorted[i] <= sorted[i-1] {
			t.Fatalf("pitches not strictly ascending: %v", sorted)
		}
	}
	ctx := NewContext(TimeSignature{4, 4}, false)
	got := c.Render(ctx)
	want := "<c' e' g'>4"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

// TestBarCheckPlacement verifies that a bar check appears only
// at integer multiples of the measure length.
func TestBarCheckPlacement(t *testing.T) {
	ctx := NewContext(TimeSignature{4, 4}, false)
	c := NewCompound()
	// Four quarters exactly fill one measure of 4/4; a bar check should
	// follow the fourth note, not the first three.
	c.Add(NewNote(60, quarter()))
	c.Add(NewNote(62, quarter()))
	c.Add(NewNote(64, quarter()))
	c.Add(NewNote(65, quarter()))

	got := c.Render(ctx)
	if count := countOccurrences(got, "|\n"); count != 1 {
		t.Errorf("expected exactly one bar check in a single full measure, got %d in %q", count, got)
	}
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
			i += len(substr) - 1
		}
	}
	return count
}

func TestNoteDurationElision(t *testing.T) {
	ctx := NewContext(TimeSignature{4, 4}, false)
	n1 := NewNote(60, quarter())
	n2 := NewNote(62, quarter())

	first := n1.Render(ctx)
	second := n2.Render(ctx)

	if first != "c'4" {
		t.Errorf("first note render = %q, want %q", first, "c'4")
	}
	if second != "d'" {
		t.Errorf("second note with same duration should elide: render = %q, want %q", second, "d'")
	}
}

func TestRestTieSplitsAcrossBarWithR(t *testing.T) {
	ctx := NewContext(TimeSignature{4, 4}, false)
	ctx.Position = duration.New(3, 4)
	r := NewRest(duration.New(1, 2))

	got := r.Render(ctx)
	want := "r4 |\nr4"
	if got != want {
		t.Errorf("Rest.Render() across bar = %q, want %q", got, want)
	}
}

func TestStaffRendersWithName(t *testing.T) {
	ctx := NewContext(TimeSignature{4, 4}, true)
	s := NewStaff("Violin")
	s.Add(NewNote(60, duration.New(1, 1)))

	got := s.Render(ctx)
	want := "\\new Staff = \"Violin\" \\relative c' {\nc1 |\n}"
	if got != want {
		t.Errorf("Staff.Render() = %q, want %q", got, want)
	}
}

func TestStaffGroupSeparatesStavesWithBlankLine(t *testing.T) {
	ctx := NewContext(TimeSignature{4, 4}, true)

	violin := NewStaff("Violin")
	violin.Add(NewNote(60, duration.New(1, 1)))
	viola := NewStaff("Viola")
	viola.Add(NewNote(60, duration.New(1, 1)))

	g := NewStaffGroup(violin, viola)
	got := g.Render(ctx)
	want := "\\new StaffGroup <<\n" +
		"\\new Staff = \"Violin\" \\relative c' {\nc1 |\n}" +
		"\n\n" +
		"\\new Staff = \"Viola\" \\relative c' {\nc1 |\n}" +
		"\n>>"
	if got != want {
		t.Errorf("StaffGroup.Render() = %q, want %q", got, want)
	}
}
