package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/youruser/teeapp/internal/layout"
)

// resample is the filter used whenever a layer is scaled to its destination.
var resample = imaging.Linear

// Layer is one buffer to draw on the canvas.
type Layer struct {
	Name      string
	Image     image.Image
	Dest      image.Rectangle
	Z         int
	Transform layout.Transform
}

// Compose draws layers onto a transparent canvas of the given size, lowest Z first,
// keeping the given order among equal Z. Layers are transformed, scaled to their
// destination when the size differs, clipped to the canvas and alpha blended.
// The layer images are only read.
func Compose(layers []Layer, size image.Point) (*image.NRGBA, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, &CompositionError{Reason: fmt.Sprintf("invalid canvas size %v", size)}
	}
	for _, l := range layers {
		if l.Image == nil || l.Image.Bounds().Empty() {
			return nil, &CompositionError{Placement: l.Name, Reason: "layer has no pixels"}
		}
		if l.Dest.Empty() {
			return nil, &CompositionError{Placement: l.Name, Reason: fmt.Sprintf("empty destination %v", l.Dest)}
		}
	}

	ordered := make([]Layer, len(layers))
	copy(ordered, layers)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Z < ordered[j].Z })

	canvas := imaging.New(size.X, size.Y, color.NRGBA{})
	for _, l := range ordered {
		src := transform(l.Image, l.Transform)
		if src.Bounds().Size() != l.Dest.Size() {
			src = imaging.Resize(src, l.Dest.Dx(), l.Dest.Dy(), resample)
		}
		blendOver(canvas, src, l.Dest.Min)
	}
	return canvas, nil
}

func transform(img image.Image, t layout.Transform) *image.NRGBA {
	switch t {
	case layout.FlipH:
		return imaging.FlipH(img)
	case layout.FlipV:
		return imaging.FlipV(img)
	case layout.Rotate90:
		return imaging.Rotate90(img)
	case layout.Rotate180:
		return imaging.Rotate180(img)
	case layout.Rotate270:
		return imaging.Rotate270(img)
	}
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// blendOver draws src with its origin at `at` using source-over on straight alpha:
// outA = sa + da(1-sa), outC = (sc*sa + dc*da*(1-sa)) / outA.
func blendOver(dst, src *image.NRGBA, at image.Point) {
	r := src.Bounds().Add(at).Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			si := src.PixOffset(x-at.X, y-at.Y)
			di := dst.PixOffset(x, y)
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]

			switch {
			case s[3] == 0:
				continue
			case s[3] == 0xff, d[3] == 0:
				copy(d, s)
				continue
			}

			sa := float64(s[3]) / 255
			da := float64(d[3]) / 255 * (1 - sa)
			outA := sa + da
			for c := 0; c < 3; c++ {
				d[c] = uint8(math.Round((float64(s[c])*sa + float64(d[c])*da) / outA))
			}
			d[3] = uint8(math.Round(outA * 255))
		}
	}
}

// Layers resolves skin against the available part buffers and a variant selection.
// Optional placements whose part is missing are skipped.
func Layers(skin *layout.SkinLayout, parts map[layout.PartID]*image.NRGBA, sel layout.Selection) ([]Layer, error) {
	var out []Layer
	for _, p := range skin.Placements() {
		id := p.Part
		if p.Variant() {
			member, err := sel.Member(skin, p.Group)
			if err != nil {
				return nil, &CompositionError{Placement: p.Name, Reason: err.Error()}
			}
			id = member
		}
		img, ok := parts[id]
		if !ok || img == nil {
			if p.Optional {
				continue
			}
			return nil, &CompositionError{Placement: p.Name, Reason: fmt.Sprintf("required part %v is not available", id)}
		}
		out = append(out, Layer{
			Name:      p.Name,
			Image:     img,
			Dest:      skin.DestRect(p),
			Z:         p.Z,
			Transform: p.Transform,
		})
	}
	return out, nil
}

// ComposeSkin resolves and composes skin onto its canvas.
func ComposeSkin(skin *layout.SkinLayout, parts map[layout.PartID]*image.NRGBA, sel layout.Selection) (*image.NRGBA, error) {
	layers, err := Layers(skin, parts, sel)
	if err != nil {
		return nil, err
	}
	return Compose(layers, skin.Canvas())
}
