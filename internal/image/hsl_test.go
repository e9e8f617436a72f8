package imagepkg

import (
	"image/color"
	"math"
	"testing"
)

func TestApplyHSLZeroIsIdentity(t *testing.T) {
	src := gradient(32, 32)
	got := ApplyHSL(src, ColorShift{})
	if !samePixels(got, src) {
		t.Fatal("zero shift changed pixels")
	}
	got.Pix[0] ^= 0xff
	if samePixels(got, src) {
		t.Error("result aliases the input")
	}
}

func TestApplyHSLKeepsAlpha(t *testing.T) {
	src := gradient(32, 32)
	src.Pix[3] = 0
	got := ApplyHSL(src, ColorShift{Hue: 77, Saturation: 0.3, Lightness: -0.2})
	for i := 3; i < len(src.Pix); i += 4 {
		if got.Pix[i] != src.Pix[i] {
			t.Fatalf("alpha at %d changed: %d -> %d", i, src.Pix[i], got.Pix[i])
		}
	}
	if got.Pix[0] != src.Pix[0] || got.Pix[1] != src.Pix[1] || got.Pix[2] != src.Pix[2] {
		t.Error("fully transparent pixel was recolored")
	}
}

func TestApplyHSLIdempotentFromSource(t *testing.T) {
	src := gradient(16, 16)
	s := ColorShift{Hue: -45, Saturation: 0.1, Lightness: 0.05}
	if !samePixels(ApplyHSL(src, s), ApplyHSL(src, s)) {
		t.Error("same shift from same source differs")
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestApplyHSLPixels(t *testing.T) {
	tests := []struct {
		name  string
		in    color.NRGBA
		shift ColorShift
		want  color.NRGBA
	}{
		{"red to green", red, ColorShift{Hue: 120}, green},
		{"red to blue wraps", red, ColorShift{Hue: -120}, blue},
		{"full turn", red, ColorShift{Hue: 720}, red},
		{"lightness clamps to white", color.NRGBA{R: 10, G: 200, B: 90, A: 200}, ColorShift{Lightness: 2}, color.NRGBA{R: 255, G: 255, B: 255, A: 200}},
		{"lightness clamps to black", red, ColorShift{Lightness: -1}, color.NRGBA{A: 255}},
		{"desaturate to grey", red, ColorShift{Saturation: -1}, color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyHSL(solid(1, 1, tt.in), tt.shift).NRGBAAt(0, 0)
			if !near(got.R, tt.want.R) || !near(got.G, tt.want.G) || !near(got.B, tt.want.B) || got.A != tt.want.A {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShiftFromRGB(t *testing.T) {
	grey := ShiftFromRGB(0x808080)
	if grey.Hue != 0 || grey.Saturation != 0 || math.Abs(grey.Lightness) > 0.01 {
		t.Errorf("neutral grey gives %v", grey)
	}
	s := ShiftFromRGB(0x00ff00)
	if math.Abs(s.Hue-120) > 0.5 || math.Abs(s.Saturation-1) > 1e-9 || math.Abs(s.Lightness) > 1e-9 {
		t.Errorf("green gives %v", s)
	}
	h, err := ShiftFromHex("#00ff00")
	if err != nil || h != s {
		t.Errorf("ShiftFromHex = %v, %v", h, err)
	}
	if _, err := ShiftFromHex("green"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestShiftFromDDNet(t *testing.T) {
	// 1900500 is 0x1cffd4: hue 40deg, full saturation, lightness 92%
	s := ShiftFromDDNet(1900500)
	if math.Abs(s.Hue-40) > 1 {
		t.Errorf("hue = %v", s.Hue)
	}
	if math.Abs(s.Saturation-1) > 0.01 {
		t.Errorf("saturation = %v", s.Saturation)
	}
	if math.Abs(s.Lightness+0.5-0.92) > 0.01 {
		t.Errorf("lightness = %v", s.Lightness+0.5)
	}
}

func TestShadowShiftIsDarker(t *testing.T) {
	base := ColorShift{Hue: 30, Saturation: 0.2, Lightness: 0.1}
	sh := ShadowShift(base)
	if sh.Hue != base.Hue || sh.Lightness >= base.Lightness || sh.Saturation >= base.Saturation {
		t.Errorf("ShadowShift(%v) = %v", base, sh)
	}
	in := solid(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	lit := ApplyHSL(in, base).NRGBAAt(0, 0)
	dark := ApplyHSL(in, sh).NRGBAAt(0, 0)
	if int(dark.R)+int(dark.G)+int(dark.B) >= int(lit.R)+int(lit.G)+int(lit.B) {
		t.Errorf("shadow %v is not darker than %v", dark, lit)
	}
}
