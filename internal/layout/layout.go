// Package layout holds the declarative data describing where tee parts live in a
// source skin (UVLayout) and where they land on the rendered canvas (SkinLayout).
//
// Layouts are validated once at construction and are read-only afterwards, so a
// single value can be shared by any number of compositions.
package layout

import (
	"fmt"
	"image"
	"math"
)

// eps absorbs float noise when fractional coordinates are compared or floored.
const eps = 1e-9

// Region is a rectangle given by origin and size. UV regions are fractions of the
// source image; skin regions are pixels or fractions of the canvas, see Units.
type Region struct {
	X, Y, W, H float64
}

func (r Region) String() string {
	return fmt.Sprintf("{%g,%g %gx%g}", r.X, r.Y, r.W, r.H)
}

func (r Region) finite() bool {
	for _, v := range [...]float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Normalized reports whether r lies inside the unit square with a positive area.
func (r Region) Normalized() bool {
	return r.finite() && r.X >= 0 && r.Y >= 0 && r.W > 0 && r.H > 0 &&
		r.X+r.W <= 1+eps && r.Y+r.H <= 1+eps
}

// Resolve maps r onto a w×h pixel grid: origin is floored and extent is rounded, so
// parts authored edge to edge on a reference sheet neither overlap nor leave gaps.
func (r Region) Resolve(w, h int) image.Rectangle {
	x0 := int(math.Floor(r.X*float64(w) + eps))
	y0 := int(math.Floor(r.Y*float64(h) + eps))
	pw := int(math.Round(r.W * float64(w)))
	ph := int(math.Round(r.H * float64(h)))
	return image.Rect(x0, y0, x0+pw, y0+ph)
}

// Error reports a degenerate or out of range layout definition.
type Error struct {
	Subject string
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("layout: %s: %s", e.Subject, e.Reason)
}

func layoutErr(subject, format string, args ...any) error {
	return &Error{Subject: subject, Reason: fmt.Sprintf(format, args...)}
}
