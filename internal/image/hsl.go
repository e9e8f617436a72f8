package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// ShadowLightness and ShadowSaturation are added to a shift before it is applied
	// to a shadow part, so shadows stay darker than the part they sit under.
	ShadowLightness  = -0.2
	ShadowSaturation = -0.1

	// ddnetDarkestLight is the lightness a DDNet packed color maps its zero byte to.
	ddnetDarkestLight = 0.5
)

// ColorShift is a hue/saturation/lightness delta. Hue is in degrees, saturation and
// lightness in [-1,1].
type ColorShift struct {
	Hue        float64
	Saturation float64
	Lightness  float64
}

func (s ColorShift) IsZero() bool {
	return s.Hue == 0 && s.Saturation == 0 && s.Lightness == 0
}

func (s ColorShift) String() string {
	return fmt.Sprintf("h%+.1f s%+.3f l%+.3f", s.Hue, s.Saturation, s.Lightness)
}

// ShadowShift derives the shift applied to shadow parts from s.
func ShadowShift(s ColorShift) ColorShift {
	s.Lightness += ShadowLightness
	s.Saturation += ShadowSaturation
	return s
}

// shiftFromHSL expresses a target color as a delta from neutral grey (h0 s0 l0.5).
func shiftFromHSL(h, s, l float64) ColorShift {
	return ColorShift{Hue: h, Saturation: s, Lightness: l - 0.5}
}

// ShiftFromRGB derives a shift from a packed 0xRRGGBB color.
func ShiftFromRGB(packed uint32) ColorShift {
	c := colorful.Color{
		R: float64(packed>>16&0xFF) / 255,
		G: float64(packed>>8&0xFF) / 255,
		B: float64(packed&0xFF) / 255,
	}
	return shiftFromHSL(c.Hsl())
}

// ShiftFromHex derives a shift from a "#rrggbb" color.
func ShiftFromHex(s string) (ColorShift, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorShift{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return shiftFromHSL(c.Hsl()), nil
}

// ShiftFromDDNet derives a shift from a DDNet packed 0xHHSSLL color, whose lightness
// byte only covers the upper half of the lightness range.
func ShiftFromDDNet(packed uint32) ColorShift {
	h := float64(packed>>16&0xFF) / 255
	s := float64(packed>>8&0xFF) / 255
	l := float64(packed&0xFF) / 255
	return shiftFromHSL(h*360, s, ddnetDarkestLight+l*(1-ddnetDarkestLight))
}

// ApplyHSL returns a recolored copy of img. Alpha is never changed and fully
// transparent pixels are copied as is.
func ApplyHSL(img image.Image, s ColorShift) *image.NRGBA {
	if s.IsZero() {
		return imaging.Clone(img)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if c.A == 0 {
			return c
		}
		return shiftPixel(c, s)
	})
}

func shiftPixel(c color.NRGBA, s ColorShift) color.NRGBA {
	h, sat, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()

	h = math.Mod(h+s.Hue, 360)
	if h < 0 {
		h += 360
	}
	sat = clamp01(sat + s.Saturation)
	l = clamp01(l + s.Lightness)

	r, g, b := colorful.Hsl(h, sat, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
