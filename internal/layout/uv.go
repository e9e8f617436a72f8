package layout

import (
	"image"
	"sort"
)

// UVLayout maps parts to normalized regions of a source skin.
type UVLayout struct {
	ref     image.Point
	regions map[PartID]Region
}

// NewUVLayout validates regions and returns a layout. ref is the resolution the layout
// was authored against; a zero point means no reference size.
func NewUVLayout(ref image.Point, regions map[PartID]Region) (*UVLayout, error) {
	if ref.X < 0 || ref.Y < 0 {
		return nil, layoutErr("uv", "negative reference size %v", ref)
	}
	if len(regions) == 0 {
		return nil, layoutErr("uv", "no regions")
	}
	out := &UVLayout{ref: ref, regions: make(map[PartID]Region, len(regions))}
	for id, r := range regions {
		if !id.Valid() {
			return nil, layoutErr("uv", "unknown part %v", id)
		}
		if !r.Normalized() {
			return nil, layoutErr("uv "+id.String(), "region %v is empty or outside the unit square", r)
		}
		out.regions[id] = r
	}
	return out, nil
}

// UVFromPixels builds a layout from pixel rectangles on a ref-sized sheet.
func UVFromPixels(ref image.Point, rects map[PartID]image.Rectangle) (*UVLayout, error) {
	if ref.X <= 0 || ref.Y <= 0 {
		return nil, layoutErr("uv", "reference size %v must be positive", ref)
	}
	regions := make(map[PartID]Region, len(rects))
	fw, fh := float64(ref.X), float64(ref.Y)
	for id, r := range rects {
		regions[id] = Region{
			X: float64(r.Min.X) / fw,
			Y: float64(r.Min.Y) / fh,
			W: float64(r.Dx()) / fw,
			H: float64(r.Dy()) / fh,
		}
	}
	return NewUVLayout(ref, regions)
}

// MustUVLayout is UVFromPixels for package level constants.
func MustUVLayout(ref image.Point, rects map[PartID]image.Rectangle) *UVLayout {
	uv, err := UVFromPixels(ref, rects)
	if err != nil {
		panic(err)
	}
	return uv
}

// Region returns the region of id; ok is false when the layout does not declare it.
func (l *UVLayout) Region(id PartID) (Region, bool) {
	r, ok := l.regions[id]
	return r, ok
}

// Reference returns the authored sheet size, zero if unknown.
func (l *UVLayout) Reference() image.Point { return l.ref }

// Parts lists the declared parts in PartID order.
func (l *UVLayout) Parts() []PartID {
	out := make([]PartID, 0, len(l.regions))
	for id := range l.regions {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
