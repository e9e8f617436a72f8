package imagepkg

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/youruser/teeapp/internal/layout"
)

func TestComposeOpaqueNonOverlapping(t *testing.T) {
	canvas, err := Compose([]Layer{
		{Name: "a", Image: solid(4, 4, red), Dest: image.Rect(0, 0, 4, 4)},
		{Name: "b", Image: solid(4, 4, blue), Dest: image.Rect(6, 6, 10, 10)},
	}, image.Pt(12, 12))
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			p := image.Pt(x, y)
			want := transparent
			switch {
			case p.In(image.Rect(0, 0, 4, 4)):
				want = red
			case p.In(image.Rect(6, 6, 10, 10)):
				want = blue
			}
			if got := canvas.NRGBAAt(x, y); got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestComposeTransparentLayerKeepsBase(t *testing.T) {
	base := gradient(16, 16)
	alone, err := Compose([]Layer{{Image: base, Dest: base.Rect}}, image.Pt(16, 16))
	if err != nil {
		t.Fatal(err)
	}
	covered, err := Compose([]Layer{
		{Image: base, Dest: base.Rect},
		{Image: solid(16, 16, transparent), Dest: base.Rect, Z: 1},
	}, image.Pt(16, 16))
	if err != nil {
		t.Fatal(err)
	}
	if !samePixels(alone, covered) {
		t.Error("transparent layer changed the base")
	}
	if !samePixels(alone, base) {
		t.Error("single layer at origin should reproduce itself")
	}
}

func TestComposeZOrder(t *testing.T) {
	dest := image.Rect(0, 0, 2, 2)
	tests := []struct {
		name   string
		layers []Layer
		want   color.NRGBA
	}{
		{"higher z wins regardless of order", []Layer{
			{Image: solid(2, 2, red), Dest: dest, Z: 5},
			{Image: solid(2, 2, blue), Dest: dest, Z: 1},
		}, red},
		{"ties keep declaration order", []Layer{
			{Image: solid(2, 2, red), Dest: dest},
			{Image: solid(2, 2, blue), Dest: dest},
		}, blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas, err := Compose(tt.layers, image.Pt(2, 2))
			if err != nil {
				t.Fatal(err)
			}
			if got := canvas.NRGBAAt(1, 1); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeBlend(t *testing.T) {
	halfRed := color.NRGBA{R: 255, A: 128}
	dest := image.Rect(0, 0, 1, 1)

	canvas, err := Compose([]Layer{
		{Image: solid(1, 1, blue), Dest: dest},
		{Image: solid(1, 1, halfRed), Dest: dest, Z: 1},
	}, image.Pt(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	// 128/255 red over opaque blue
	if got, want := canvas.NRGBAAt(0, 0), (color.NRGBA{R: 128, G: 0, B: 127, A: 255}); got != want {
		t.Errorf("over opaque: got %v, want %v", got, want)
	}

	canvas, err = Compose([]Layer{{Image: solid(1, 1, halfRed), Dest: dest}}, image.Pt(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got := canvas.NRGBAAt(0, 0); got != halfRed {
		t.Errorf("over transparent: got %v, want %v", got, halfRed)
	}

	halfBlue := color.NRGBA{B: 255, A: 128}
	canvas, err = Compose([]Layer{
		{Image: solid(1, 1, halfBlue), Dest: dest},
		{Image: solid(1, 1, halfRed), Dest: dest, Z: 1},
	}, image.Pt(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	// outA = .502 + .502*.498 = .752
	got := canvas.NRGBAAt(0, 0)
	if got.A != 192 || got.R <= got.B || got.G != 0 {
		t.Errorf("semi over semi: got %v", got)
	}
}

func TestComposeTransformAndResample(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, blue)

	canvas, err := Compose([]Layer{{Image: img, Dest: image.Rect(0, 0, 2, 1), Transform: layout.FlipH}}, image.Pt(2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if canvas.NRGBAAt(0, 0) != blue || canvas.NRGBAAt(1, 0) != red {
		t.Error("FlipH not applied")
	}

	canvas, err = Compose([]Layer{{Image: img, Dest: image.Rect(0, 0, 1, 2), Transform: layout.Rotate90}}, image.Pt(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	// counter-clockwise: the right pixel ends on top
	if canvas.NRGBAAt(0, 0) != blue || canvas.NRGBAAt(0, 1) != red {
		t.Errorf("Rotate90 gives %v %v", canvas.NRGBAAt(0, 0), canvas.NRGBAAt(0, 1))
	}

	canvas, err = Compose([]Layer{{Image: solid(4, 4, green), Dest: image.Rect(2, 2, 10, 10)}}, image.Pt(12, 12))
	if err != nil {
		t.Fatal(err)
	}
	if canvas.NRGBAAt(9, 9) != green || canvas.NRGBAAt(10, 10) != transparent || canvas.NRGBAAt(1, 1) != transparent {
		t.Error("solid layer not scaled to its destination")
	}
}

func TestComposeClips(t *testing.T) {
	canvas, err := Compose([]Layer{{Image: solid(4, 4, red), Dest: image.Rect(-2, -2, 2, 2)}}, image.Pt(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if canvas.NRGBAAt(0, 0) != red || canvas.NRGBAAt(2, 2) != transparent {
		t.Error("layer not clipped to the canvas")
	}
}

func TestComposeErrors(t *testing.T) {
	tests := []struct {
		name   string
		layers []Layer
		size   image.Point
	}{
		{"zero canvas", nil, image.Pt(0, 4)},
		{"nil image", []Layer{{Dest: image.Rect(0, 0, 1, 1)}}, image.Pt(4, 4)},
		{"empty dest", []Layer{{Image: solid(1, 1, red)}}, image.Pt(4, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(tt.layers, tt.size)
			var cerr *CompositionError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *CompositionError, got %v", err)
			}
		})
	}
}

func eyesSkin(t *testing.T, defaults map[layout.Group]layout.PartID) *layout.SkinLayout {
	t.Helper()
	skin, err := layout.NewSkinLayout(image.Pt(16, 16), layout.UnitPixels, []layout.Placement{
		{Name: "shadow", Part: layout.BodyShadow, Dest: layout.Region{X: 0, Y: 0, W: 8, H: 8}, Optional: true},
		{Name: "body", Part: layout.Body, Dest: layout.Region{X: 0, Y: 0, W: 8, H: 8}, Z: 1},
		{Name: "eyes", Group: layout.GroupEyes, Dest: layout.Region{X: 8, Y: 8, W: 4, H: 4}, Z: 2},
	}, defaults)
	if err != nil {
		t.Fatal(err)
	}
	return skin
}

func TestLayers(t *testing.T) {
	parts := map[layout.PartID]*image.NRGBA{
		layout.Body:      solid(8, 8, red),
		layout.EyesHappy: solid(4, 4, green),
		layout.EyesAngry: solid(4, 4, blue),
	}
	skin := eyesSkin(t, map[layout.Group]layout.PartID{layout.GroupEyes: layout.EyesHappy})

	layers, err := Layers(skin, parts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 2 {
		t.Fatalf("optional missing shadow should be skipped, got %d layers", len(layers))
	}
	if layers[1].Image != parts[layout.EyesHappy] {
		t.Error("default eyes not used")
	}

	var cerr *CompositionError
	if _, err := Layers(skin, parts, layout.Eyes(layout.EyesPain)); !errors.As(err, &cerr) {
		t.Errorf("unavailable variant: expected *CompositionError, got %v", err)
	}
	if _, err := Layers(skin, parts, layout.Selection{layout.GroupEyes: layout.Body}); !errors.As(err, &cerr) {
		t.Errorf("non-member selection: expected *CompositionError, got %v", err)
	}
	if _, err := Layers(eyesSkin(t, nil), parts, nil); !errors.As(err, &cerr) {
		t.Errorf("no selection and no default: expected *CompositionError, got %v", err)
	}
	delete(parts, layout.Body)
	if _, err := Layers(skin, parts, nil); !errors.As(err, &cerr) {
		t.Errorf("missing required part: expected *CompositionError, got %v", err)
	}
}

func TestVariantOnlyChangesItsRegion(t *testing.T) {
	parts := map[layout.PartID]*image.NRGBA{
		layout.Body:      gradient(8, 8),
		layout.EyesHappy: solid(4, 4, green),
		layout.EyesAngry: solid(4, 4, blue),
	}
	skin := eyesSkin(t, nil)
	happy, err := ComposeSkin(skin, parts, layout.Eyes(layout.EyesHappy))
	if err != nil {
		t.Fatal(err)
	}
	angry, err := ComposeSkin(skin, parts, layout.Eyes(layout.EyesAngry))
	if err != nil {
		t.Fatal(err)
	}
	eyes := image.Rect(8, 8, 12, 12)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			same := happy.NRGBAAt(x, y) == angry.NRGBAAt(x, y)
			if in := image.Pt(x, y).In(eyes); in == same {
				t.Fatalf("(%d,%d) inside eyes=%v but equal=%v", x, y, in, same)
			}
		}
	}
}
