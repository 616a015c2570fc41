// Package duration implements the rational duration algebra: converting MIDI
// tick spans into beat fractions and decomposing those fractions into
// printable LilyPond note-value strings (simple, dotted, or tied).
package duration

import (
	"errors"
	"math/big"
	"math/bits"
	"strconv"
	"strings"
)

// maxTies bounds the tied-note decomposition search. A duration that cannot
// be expressed as a bounded chain of dyadic note values is reported as
// ErrUnrepresentable rather than looping forever.
const maxTies = 32

// ErrUnrepresentable is returned for a duration whose fraction is zero or
// negative, or whose decomposition exceeds the safety bound.
var ErrUnrepresentable = errors.New("duration: unrepresentable as note values")

// Duration is a positive rational fraction of a whole note, always reduced
// to lowest terms. The zero value is not a valid Duration; use New or
// FromTicks to construct one. Duration is immutable: every operation returns
// a new value.
type Duration struct {
	r *big.Rat
}

// Position is structurally identical to Duration but carries the separate
// meaning of a beat offset from the start of a track or staff.
type Position = Duration

// Zero is the zero-length duration, used as the starting Position of a staff.
var Zero = Duration{r: new(big.Rat)}

// New builds a Duration equal to num/den of a whole note, reduced to lowest
// terms. den must be non-zero.
func New(num, den int64) Duration {
	return Duration{r: big.NewRat(num, den)}
}

// FromTicks converts a tick count plus the file's ticks-per-beat and the
// active time signature's denominator into a reduced beat-fraction Duration:
// ticks / (ticksPerBeat * denominator).
func FromTicks(ticks int64, ticksPerBeat uint32, denominator uint8) Duration {
	beat := big.NewRat(ticks, int64(ticksPerBeat))
	return Duration{r: new(big.Rat).SetFrac(beat.Num(), new(big.Int).Mul(beat.Denom(), big.NewInt(int64(denominator))))}
}

// Num and Denom return the reduced numerator and denominator.
func (d Duration) Num() int64   { return d.r.Num().Int64() }
func (d Duration) Denom() int64 { return d.r.Denom().Int64() }

// Sign reports the sign of d: -1, 0, or 1.
func (d Duration) Sign() int { return d.r.Sign() }

// Cmp compares d to other: -1, 0, or 1.
func (d Duration) Cmp(other Duration) int { return d.r.Cmp(other.r) }

// Add returns d + other.
func (d Duration) Add(other Duration) Duration {
	return Duration{r: new(big.Rat).Add(d.r, other.r)}
}

// Sub returns d - other.
func (d Duration) Sub(other Duration) Duration {
	return Duration{r: new(big.Rat).Sub(d.r, other.r)}
}

// Mod returns d modulo m: d - m*floor(d/m). Both must be non-negative; m
// must be positive.
func (d Duration) Mod(m Duration) Duration {
	quo := new(big.Rat).Quo(d.r, m.r)
	q := new(big.Int).Quo(quo.Num(), quo.Denom())
	consumed := new(big.Rat).Mul(new(big.Rat).SetInt(q), m.r)
	return Duration{r: new(big.Rat).Sub(d.r, consumed)}
}

// canSimple reports whether the reduced fraction n/d renders as a single
// note symbol "d" (n == 1).
func (d Duration) canSimple() bool {
	return d.r.Num().Cmp(big.NewInt(1)) == 0
}

// canDotted reports whether n/d renders as a dotted note: d > 1,
// (n+1) mod 4 == 0, and n+1 is a power of two.
func (d Duration) canDotted() bool {
	if d.r.Denom().Cmp(big.NewInt(1)) <= 0 {
		return false
	}
	nPlus1 := new(big.Int).Add(d.r.Num(), big.NewInt(1))
	mod := new(big.Int).Mod(nPlus1, big.NewInt(4))
	if mod.Sign() != 0 {
		return false
	}
	return new(big.Int).And(nPlus1, new(big.Int).Sub(nPlus1, big.NewInt(1))).Sign() == 0
}

// Render decomposes d into printable LilyPond note-value text: a simple
// value ("4"), a dotted value ("8."), or a chain of tied dyadic values
// ("4~ 8"). The dyadic formulation of the tied case (find the largest
// dyadic fraction <= the remainder, subtract, repeat) is used in preference
// to the brute-force ascending search; both produce identical output.
func (d Duration) Render() (string, error) {
	if d.Sign() <= 0 {
		return "", ErrUnrepresentable
	}

	var parts []string
	remaining := Duration{r: new(big.Rat).Set(d.r)}

	for i := 0; i < maxTies; i++ {
		if remaining.canSimple() {
			parts = append(parts, strconv.FormatInt(remaining.Denom(), 10))
			return strings.Join(parts, "~ "), nil
		}
		if remaining.canDotted() {
			nPlus1 := new(big.Int).Add(remaining.r.Num(), big.NewInt(1))
			wholeDenom := new(big.Int).Mul(remaining.r.Denom(), big.NewInt(2))
			wholeDenom.Quo(wholeDenom, nPlus1)
			dots := countDots(nPlus1)
			parts = append(parts, wholeDenom.String()+strings.Repeat(".", dots))
			return strings.Join(parts, "~ "), nil
		}

		m := largestDyadicAtMost(remaining.r)
		parts = append(parts, strconv.FormatInt(m, 10))
		remaining = remaining.Sub(New(1, m))
		if remaining.Sign() <= 0 {
			return strings.Join(parts, "~ "), nil
		}
	}
	return "", ErrUnrepresentable
}

// countDots returns log2(nPlus1) - 1, the number of dots for a dotted note
// whose (numerator+1) equals nPlus1 (a power of two, guaranteed by canDotted
// combined with the n/d reduction invariant).
func countDots(nPlus1 *big.Int) int {
	log2 := bits.Len(uint(nPlus1.Uint64())) - 1
	dots := log2 - 1
	if dots < 0 {
		dots = 0
	}
	return dots
}

// largestDyadicAtMost returns the smallest power of two m such that 1/m <= r,
// i.e. the largest dyadic unit fraction not exceeding r.
func largestDyadicAtMost(r *big.Rat) int64 {
	m := int64(1)
	for i := 0; i < 62; i++ {
		lhs := new(big.Int).Mul(big.NewInt(m), r.Num())
		if lhs.Cmp(r.Denom()) >= 0 {
			return m
		}
		m *= 2
	}
	return m
}
