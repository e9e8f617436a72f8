package tee

import (
	"context"
	"errors"
	"fmt"
	"image"

	imagepkg "github.com/youruser/teeapp/internal/image"
	"github.com/youruser/teeapp/internal/layout"
)

var ErrInvalidBuilder = errors.New("tee: provide either data and format or a url")

// DimensionError reports a sheet whose size differs from the layout reference.
type DimensionError struct {
	Expected image.Point
	Found    image.Point
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("tee: sheet is %v, layout expects %v", e.Found, e.Expected)
}

// Builder collects the inputs of a Tee.
type Builder struct {
	data    []byte
	format  imagepkg.Format
	url     string
	uv      *layout.UVLayout
	fetcher *imagepkg.Fetcher
	strict  bool
}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) WithData(data []byte, format imagepkg.Format) *Builder {
	b.data, b.format = data, format
	return b
}

func (b *Builder) WithURL(url string) *Builder {
	b.url = url
	return b
}

// WithUV sets the sheet layout; layout.TeeUV is used otherwise.
func (b *Builder) WithUV(uv *layout.UVLayout) *Builder {
	b.uv = uv
	return b
}

func (b *Builder) WithFetcher(f *imagepkg.Fetcher) *Builder {
	b.fetcher = f
	return b
}

// WithStrictSize rejects sheets whose size differs from the layout's reference size.
func (b *Builder) WithStrictSize(strict bool) *Builder {
	b.strict = strict
	return b
}

// Build parses the configured data, fetching it first when a URL was given.
func (b *Builder) Build(ctx context.Context) (*Tee, error) {
	uv := b.uv
	if uv == nil {
		uv = layout.TeeUV
	}

	data, format := b.data, b.format
	switch {
	case data != nil && format != imagepkg.FormatUnknown:
	case data == nil && b.url != "":
		f := b.fetcher
		if f == nil {
			f = &imagepkg.Fetcher{}
		}
		var err error
		if data, format, err = f.Fetch(ctx, b.url); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidBuilder
	}

	src, err := imagepkg.Decode(data, format)
	if err != nil {
		return nil, err
	}
	if ref := uv.Reference(); b.strict && ref != (image.Point{}) && src.Rect.Size() != ref {
		return nil, &DimensionError{Expected: ref, Found: src.Rect.Size()}
	}
	return FromImage(src, uv)
}
