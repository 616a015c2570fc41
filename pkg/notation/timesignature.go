package notation

import (
	"fmt"

	"github.com/corymarsh/midi2ly/pkg/duration"
)

// TimeSignature is a meter marking, e.g. 4/4 or 6/8. It is both a value
// carried by Context (to compute measure length and bar-check placement)
// and a renderable Node, for the cases where a meter change is inserted
// directly into a staff's body.
type TimeSignature struct {
	Numerator   uint8
	Denominator uint8
}

// DefaultTimeSignature is 4/4, assumed file-wide when the control track
// (track 0) carries no meta time-signature event.
var DefaultTimeSignature = TimeSignature{Numerator: 4, Denominator: 4}

// Length reports zero: a time signature marking consumes no musical time.
func (t TimeSignature) Length() duration.Duration {
	return duration.Zero
}

// Render emits "\time n/d".
func (t TimeSignature) Render(ctx *Context) string {
	return fmt.Sprintf("\\time %d/%d", t.Numerator, t.Denominator)
}

func (t TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", t.Numerator, t.Denominator)
}
