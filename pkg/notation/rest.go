package notation

import "github.com/corymarsh/midi2ly/pkg/duration"

// Rest is a silent span of a given duration.
type Rest struct {
	Duration duration.Duration
}

// NewRest constructs a Rest.
func NewRest(d duration.Duration) Rest {
	return Rest{Duration: d}
}

// Length reports the rest's duration.
func (r Rest) Length() duration.Duration { return r.Duration }

// Render emits the rest text ("r4", "r1 r4", ...). A rest cannot be tied,
// so internal ties and bar-crossing splits both render as repeated "r".
func (r Rest) Render(ctx *Context) string {
	text, err := renderDuration(ctx, r.Duration, true)
	if err != nil {
		return "r"
	}
	return text
}
