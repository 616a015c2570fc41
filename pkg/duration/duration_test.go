package duration

import "testing"

func TestFromTicksReduces(t *testing.T) {
	tests := []struct {
		name           string
		ticks          int64
		ticksPerBeat   uint32
		denominator    uint8
		wantNum        int64
		wantDenom      int64
	}{
		{"quarter at tpb1", 1, 1, 4, 1, 4},
		{"eighth at tpb2", 1, 2, 4, 1, 8},
		{"whole note", 4, 1, 4, 1, 1},
		{"dotted quarter", 3, 2, 4, 3, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromTicks(tt.ticks, tt.ticksPerBeat, tt.denominator)
			if d.Num() != tt.wantNum || d.Denom() != tt.wantDenom {
				t.Errorf("FromTicks(%d, %d, %d) = %d/%d, want %d/%d",
					tt.ticks, tt.ticksPerBeat, tt.denominator, d.Num(), d.Denom(), tt.wantNum, tt.wantDenom)
			}
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		num     int64
		den     int64
		want    string
		wantErr bool
	}{
		{"quarter", 1, 4, "4", false},
		{"whole", 1, 1, "1", false},
		{"dotted quarter (3/8)", 3, 8, "4.", false},
		{"double-dotted quarter (7/16)", 7, 16, "4..", false},
		{"triple-dotted quarter (15/32)", 15, 32, "4...", false},
		{"tied whole plus quarter (5/4)", 5, 4, "1~ 4", false},
		{"tied half plus eighth (5/8)", 5, 8, "2~ 8", false},
		{"zero is unrepresentable", 0, 1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.num, tt.den)
			got, err := d.Render()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Render() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render(%d/%d) = %q, want %q", tt.num, tt.den, got, tt.want)
			}
		})
	}
}

func TestAddSubCmp(t *testing.T) {
	a := New(1, 4)
	b := New(1, 8)

	sum := a.Add(b)
	if sum.Num() != 3 || sum.Denom() != 8 {
		t.Errorf("Add() = %d/%d, want 3/8", sum.Num(), sum.Denom())
	}

	diff := a.Sub(b)
	if diff.Num() != 1 || diff.Denom() != 8 {
		t.Errorf("Sub() = %d/%d, want 1/8", diff.Num(), diff.Denom())
	}

	if a.Cmp(b) <= 0 {
		t.Errorf("Cmp(1/4, 1/8) = %d, want > 0", a.Cmp(b))
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		name      string
		dNum, dDen int64
		mNum, mDen int64
		wantNum, wantDenom int64
	}{
		{"one measure boundary", 4, 4, 1, 1, 0, 1},
		{"mid measure", 5, 8, 1, 2, 1, 8},
		{"exact multiple", 1, 1, 1, 4, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.dNum, tt.dDen)
			m := New(tt.mNum, tt.mDen)
			got := d.Mod(m)
			if got.Num() != tt.wantNum || got.Denom() != tt.wantDenom {
				t.Errorf("Mod() = %d/%d, want %d/%d", got.Num(), got.Denom(), tt.wantNum, tt.wantDenom)
			}
		})
	}
}

// TestDurationRoundTrip verifies that the Duration's fraction
// equals ticks/(ticksPerBeat*denominator) in lowest terms for every
// positive tick count.
func TestDurationRoundTrip(t *testing.T) {
	cases := []struct {
		ticks        int64
		ticksPerBeat uint32
		denominator  uint8
	}{
		{1, 480, 4}, {3, 480, 4}, {960, 480, 4}, {7, 96, 8}, {1, 1, 4},
	}
	for _, c := range cases {
		d := FromTicks(c.ticks, c.ticksPerBeat, c.denominator)
		want := New(c.ticks, int64(c.ticksPerBeat)*int64(c.denominator))
		if d.Cmp(want) != 0 {
			t.Errorf("FromTicks(%d, %d, %d) = %d/%d, want reduced form of %d/%d",
				c.ticks, c.ticksPerBeat, c.denominator, d.Num(), d.Denom(), c.ticks, int64(c.ticksPerBeat)*int64(c.denominator))
		}
	}
}
