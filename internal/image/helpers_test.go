package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

var (
	red         = color.NRGBA{R: 255, A: 255}
	green       = color.NRGBA{G: 255, A: 255}
	blue        = color.NRGBA{B: 255, A: 255}
	transparent = color.NRGBA{}
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// gradient gives every pixel a distinct, position dependent color.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: uint8((x + y) * 2), A: uint8(128 + x%128)})
		}
	}
	return img
}

func mustEncode(t *testing.T, img image.Image, f Format) []byte {
	t.Helper()
	b, err := Encode(img, f)
	if err != nil {
		t.Fatalf("encode %v: %v", f, err)
	}
	return b
}

func samePixels(a, b *image.NRGBA) bool {
	return a.Rect.Size() == b.Rect.Size() && bytes.Equal(a.Pix, b.Pix)
}
