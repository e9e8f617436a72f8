// Package tee assembles rendered tee characters from skin sheets.
//
// A Tee owns a decoded source sheet and every part extracted from it. Parts are
// extracted eagerly by New, so an ExtractionError can only come from construction.
// Recoloring replaces the shift of the targeted parts and is always recomputed from
// the originally extracted pixels. Compose only reads the Tee.
//
// A Tee is not safe for concurrent mutation. Concurrent Compose calls are safe as
// long as no ApplyHSL, ApplyHSLTo or ResetColor call is in flight.
package tee

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	imagepkg "github.com/youruser/teeapp/internal/image"
	"github.com/youruser/teeapp/internal/layout"
)

type entry struct {
	base    *image.NRGBA
	colored *image.NRGBA
	shift   imagepkg.ColorShift
	gen     uint64
}

func (e *entry) current() *image.NRGBA {
	if e.colored != nil {
		return e.colored
	}
	return e.base
}

// Tee is a parsed skin ready for composition.
type Tee struct {
	src   *image.NRGBA
	uv    *layout.UVLayout
	parts map[layout.PartID]*entry
	gen   uint64
}

// New decodes data as format and extracts every part uv declares.
func New(data []byte, uv *layout.UVLayout, format imagepkg.Format) (*Tee, error) {
	src, err := imagepkg.Decode(data, format)
	if err != nil {
		return nil, err
	}
	return FromImage(src, uv)
}

// FromImage builds a Tee from an already decoded sheet. src is copied.
func FromImage(src image.Image, uv *layout.UVLayout) (*Tee, error) {
	if uv == nil {
		uv = layout.TeeUV
	}
	own := imaging.Clone(src)
	extracted, err := imagepkg.ExtractAll(own, uv)
	if err != nil {
		return nil, err
	}
	t := &Tee{src: own, uv: uv, parts: make(map[layout.PartID]*entry, len(extracted))}
	for id, img := range extracted {
		t.parts[id] = &entry{base: img}
	}
	return t, nil
}

// NewFromURL fetches a skin and parses it; the format comes from the response.
func NewFromURL(ctx context.Context, f *imagepkg.Fetcher, url string, uv *layout.UVLayout) (*Tee, error) {
	if f == nil {
		f = &imagepkg.Fetcher{}
	}
	data, format, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return New(data, uv, format)
}

// Size returns the source sheet size.
func (t *Tee) Size() image.Point { return t.src.Rect.Size() }

// UV returns the layout the sheet was read with.
func (t *Tee) UV() *layout.UVLayout { return t.uv }

// Has reports whether the sheet provides id.
func (t *Tee) Has(id layout.PartID) bool {
	_, ok := t.parts[id]
	return ok
}

// Part returns a copy of the current, possibly recolored, pixels of id.
func (t *Tee) Part(id layout.PartID) (*image.NRGBA, bool) {
	e, ok := t.parts[id]
	if !ok {
		return nil, false
	}
	return imaging.Clone(e.current()), true
}

// Shift returns the shift last applied to id and the generation it was applied in.
// A zero generation means the part was never recolored.
func (t *Tee) Shift(id layout.PartID) (imagepkg.ColorShift, uint64) {
	e, ok := t.parts[id]
	if !ok {
		return imagepkg.ColorShift{}, 0
	}
	return e.shift, e.gen
}

// Generation counts the recolor calls made on t.
func (t *Tee) Generation() uint64 { return t.gen }

// ApplyHSL recolors every part. Shadow parts receive imagepkg.ShadowShift(s).
func (t *Tee) ApplyHSL(s imagepkg.ColorShift) {
	t.ApplyHSLTo(s, t.uv.Parts()...)
}

// ApplyHSLTo recolors only ids, replacing whatever shift they had. Other parts keep
// their current colors. Parts the sheet does not provide are ignored.
func (t *Tee) ApplyHSLTo(s imagepkg.ColorShift, ids ...layout.PartID) {
	t.gen++
	for _, id := range ids {
		e, ok := t.parts[id]
		if !ok {
			continue
		}
		e.gen = t.gen
		if s.IsZero() {
			e.shift, e.colored = s, nil
			continue
		}
		e.shift = s
		if id.Shadow() {
			e.shift = imagepkg.ShadowShift(s)
		}
		e.colored = imagepkg.ApplyHSL(e.base, e.shift)
	}
}

// ResetColor drops the shift of ids, or of every part when ids is empty.
func (t *Tee) ResetColor(ids ...layout.PartID) {
	if len(ids) == 0 {
		ids = t.uv.Parts()
	}
	t.ApplyHSLTo(imagepkg.ColorShift{}, ids...)
}

// snapshot copies the current buffers so composition never aliases the cache.
func (t *Tee) snapshot() map[layout.PartID]*image.NRGBA {
	out := make(map[layout.PartID]*image.NRGBA, len(t.parts))
	for id, e := range t.parts {
		out[id] = imaging.Clone(e.current())
	}
	return out
}

// ComposeImage renders skin with sel choosing the variant members.
func (t *Tee) ComposeImage(skin *layout.SkinLayout, sel layout.Selection) (*image.NRGBA, error) {
	if skin == nil {
		return nil, &imagepkg.CompositionError{Reason: "no skin layout"}
	}
	return imagepkg.ComposeSkin(skin, t.snapshot(), sel)
}

// Compose renders skin and encodes the result as format.
func (t *Tee) Compose(skin *layout.SkinLayout, sel layout.Selection, format imagepkg.Format) ([]byte, error) {
	img, err := t.ComposeImage(skin, sel)
	if err != nil {
		return nil, err
	}
	return imagepkg.Encode(img, format)
}

// ComposeDefault is Compose with the layout's default variants, encoded as PNG.
func (t *Tee) ComposeDefault(skin *layout.SkinLayout) ([]byte, error) {
	if skin == nil {
		return nil, &imagepkg.CompositionError{Reason: "no skin layout"}
	}
	return t.Compose(skin, layout.DefaultSelection(skin), imagepkg.FormatPNG)
}

func (t *Tee) String() string {
	return fmt.Sprintf("tee %v, %d parts, generation %d", t.Size(), len(t.parts), t.gen)
}
