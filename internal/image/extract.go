package imagepkg

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/youruser/teeapp/internal/layout"
)

// Extract copies the part of src described by the normalized region r. The result
// owns its pixels and starts at (0,0).
func Extract(src image.Image, id layout.PartID, r layout.Region) (*image.NRGBA, error) {
	b := src.Bounds()
	rect := r.Resolve(b.Dx(), b.Dy()).Add(b.Min)
	if rect.Empty() || !rect.In(b) {
		return nil, &ExtractionError{Part: id, Rect: rect, Bounds: b}
	}
	return imaging.Crop(src, rect), nil
}

// ExtractAll extracts every part declared by uv.
func ExtractAll(src image.Image, uv *layout.UVLayout) (map[layout.PartID]*image.NRGBA, error) {
	out := make(map[layout.PartID]*image.NRGBA)
	for _, id := range uv.Parts() {
		r, _ := uv.Region(id)
		part, err := Extract(src, id, r)
		if err != nil {
			return nil, err
		}
		out[id] = part
	}
	return out, nil
}
