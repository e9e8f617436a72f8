package imagepkg

import (
	"image"

	"github.com/cenkalti/dominantcolor"
)

// Palette returns up to n dominant colors of img as "#RRGGBB", most dominant first.
// Useful for suggesting a recolor that matches a skin.
func Palette(img image.Image, n int) []string {
	if n <= 0 || img == nil || img.Bounds().Empty() {
		return nil
	}
	cs := dominantcolor.FindN(img, n)
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, dominantcolor.Hex(c))
	}
	return out
}
