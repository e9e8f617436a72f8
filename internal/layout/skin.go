package layout

import (
	"fmt"
	"image"
	"strings"
)

// Units tells how the destination regions of a SkinLayout are expressed.
type Units uint8

const (
	// UnitPixels places parts in absolute canvas pixels.
	UnitPixels Units = iota
	// UnitRelative places parts in fractions of the canvas size.
	UnitRelative
)

func (u Units) String() string {
	if u == UnitRelative {
		return "relative"
	}
	return "pixels"
}

// ParseUnits resolves "pixels" (default) or "relative".
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pixels", "px":
		return UnitPixels, nil
	case "relative", "percent", "fraction":
		return UnitRelative, nil
	}
	return UnitPixels, fmt.Errorf("unknown units %q", s)
}

// Transform is a geometric operation applied to a part before it is placed.
type Transform uint8

const (
	TransformNone Transform = iota
	FlipH
	FlipV
	Rotate90
	Rotate180
	Rotate270

	numTransforms
)

var transformNames = [numTransforms]string{
	TransformNone: "none",
	FlipH:         "flip_h",
	FlipV:         "flip_v",
	Rotate90:      "rotate_90",
	Rotate180:     "rotate_180",
	Rotate270:     "rotate_270",
}

func (t Transform) String() string {
	if t >= numTransforms {
		return fmt.Sprintf("transform(%d)", uint8(t))
	}
	return transformNames[t]
}

// ParseTransform resolves a transform name; the empty string means none.
func ParseTransform(s string) (Transform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TransformNone, nil
	}
	for t, name := range transformNames {
		if name == s {
			return Transform(t), nil
		}
	}
	return TransformNone, fmt.Errorf("unknown transform %q", s)
}

// Placement puts one part, or the selected member of a variant group, on the canvas.
type Placement struct {
	Name string
	// Part is drawn when Group is GroupNone.
	Part  PartID
	Group Group
	Dest  Region
	// Z orders drawing, lowest first; equal values keep declaration order.
	Z         int
	Transform Transform
	// Optional placements are skipped when their part is unavailable.
	Optional bool
}

// Variant reports whether p draws a member of a variant group.
func (p Placement) Variant() bool { return p.Group != GroupNone }

// Draws reports whether p would draw id given a selection that picks id for its group.
func (p Placement) Draws(id PartID) bool {
	if p.Variant() {
		return id.Group() == p.Group
	}
	return p.Part == id
}

// SkinLayout describes the assembled character: canvas size, placements and the
// default member of each variant group.
type SkinLayout struct {
	canvas     image.Point
	units      Units
	placements []Placement
	defaults   map[Group]PartID
}

// NewSkinLayout validates and copies its arguments.
func NewSkinLayout(canvas image.Point, units Units, placements []Placement, defaults map[Group]PartID) (*SkinLayout, error) {
	if canvas.X <= 0 || canvas.Y <= 0 {
		return nil, layoutErr("skin", "canvas size %v must be positive", canvas)
	}
	if units != UnitPixels && units != UnitRelative {
		return nil, layoutErr("skin", "unknown units %d", units)
	}
	if len(placements) == 0 {
		return nil, layoutErr("skin", "no placements")
	}

	l := &SkinLayout{
		canvas:     canvas,
		units:      units,
		placements: make([]Placement, len(placements)),
		defaults:   make(map[Group]PartID, len(defaults)),
	}
	for g, id := range defaults {
		if g == GroupNone || id.Group() != g {
			return nil, layoutErr("skin defaults", "%v is not a member of group %v", id, g)
		}
		l.defaults[g] = id
	}
	for i, p := range placements {
		if p.Name == "" {
			if p.Variant() {
				p.Name = fmt.Sprintf("%v#%d", p.Group, i)
			} else {
				p.Name = fmt.Sprintf("%v#%d", p.Part, i)
			}
		}
		subject := "skin " + p.Name
		switch {
		case p.Variant() && len(p.Group.Members()) == 0:
			return nil, layoutErr(subject, "unknown group %v", p.Group)
		case !p.Variant() && !p.Part.Valid():
			return nil, layoutErr(subject, "unknown part %v", p.Part)
		case p.Transform >= numTransforms:
			return nil, layoutErr(subject, "unknown transform %v", p.Transform)
		case !p.Dest.finite() || p.Dest.W <= 0 || p.Dest.H <= 0:
			return nil, layoutErr(subject, "destination %v is empty", p.Dest)
		case units == UnitRelative && !p.Dest.Normalized():
			return nil, layoutErr(subject, "destination %v is outside the unit square", p.Dest)
		}
		if r := l.resolve(p.Dest); r.Empty() {
			return nil, layoutErr(subject, "destination %v resolves to no pixels", p.Dest)
		}
		l.placements[i] = p
	}
	return l, nil
}

// MustSkinLayout is NewSkinLayout for package level constants.
func MustSkinLayout(canvas image.Point, units Units, placements []Placement, defaults map[Group]PartID) *SkinLayout {
	l, err := NewSkinLayout(canvas, units, placements, defaults)
	if err != nil {
		panic(err)
	}
	return l
}

// Canvas returns the output size in pixels.
func (l *SkinLayout) Canvas() image.Point { return l.canvas }

func (l *SkinLayout) Units() Units { return l.units }

// Placements returns a copy of the placements in declaration order.
func (l *SkinLayout) Placements() []Placement {
	out := make([]Placement, len(l.placements))
	copy(out, l.placements)
	return out
}

// Lookup returns the first placement that draws id.
func (l *SkinLayout) Lookup(id PartID) (Placement, bool) {
	for _, p := range l.placements {
		if p.Draws(id) {
			return p, true
		}
	}
	return Placement{}, false
}

// Default returns the declared default member of g.
func (l *SkinLayout) Default(g Group) (PartID, bool) {
	id, ok := l.defaults[g]
	return id, ok
}

// Groups lists the variant groups used by at least one placement.
func (l *SkinLayout) Groups() []Group {
	var out []Group
	seen := map[Group]bool{}
	for _, p := range l.placements {
		if p.Variant() && !seen[p.Group] {
			seen[p.Group] = true
			out = append(out, p.Group)
		}
	}
	return out
}

// DestRect resolves the destination of p to canvas pixels.
func (l *SkinLayout) DestRect(p Placement) image.Rectangle {
	return l.resolve(p.Dest)
}

func (l *SkinLayout) resolve(r Region) image.Rectangle {
	if l.units == UnitRelative {
		return r.Resolve(l.canvas.X, l.canvas.Y)
	}
	return r.Resolve(1, 1)
}
