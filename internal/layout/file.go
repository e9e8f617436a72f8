package layout

import (
	"fmt"
	"image"
	"os"

	"gopkg.in/yaml.v2"
)

// File holds the layouts found in a YAML layout document. Either may be nil when the
// document omits that section.
type File struct {
	UV   *UVLayout
	Skin *SkinLayout
}

type yamlSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type yamlRegion struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlUV struct {
	Reference yamlSize              `yaml:"reference"`
	Units     string                `yaml:"units"`
	Parts     map[string]yamlRegion `yaml:"parts"`
}

type yamlPlacement struct {
	Name      string     `yaml:"name"`
	Part      string     `yaml:"part"`
	Group     string     `yaml:"group"`
	Dest      yamlRegion `yaml:"dest"`
	Z         int        `yaml:"z"`
	Transform string     `yaml:"transform"`
	Optional  bool       `yaml:"optional"`
}

type yamlSkin struct {
	Canvas     yamlSize          `yaml:"canvas"`
	Units      string            `yaml:"units"`
	Defaults   map[string]string `yaml:"defaults"`
	Placements []yamlPlacement   `yaml:"placements"`
}

type yamlFile struct {
	UV   *yamlUV   `yaml:"uv"`
	Skin *yamlSkin `yaml:"skin"`
}

// LoadFile reads and validates a YAML layout document.
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML layout document. Validation failures are returned as *Error.
func Parse(b []byte) (*File, error) {
	var raw yamlFile
	if err := yaml.UnmarshalStrict(b, &raw); err != nil {
		return nil, &Error{Subject: "yaml", Reason: err.Error()}
	}
	if raw.UV == nil && raw.Skin == nil {
		return nil, layoutErr("yaml", "document has neither uv nor skin section")
	}

	out := &File{}
	if raw.UV != nil {
		uv, err := raw.UV.build()
		if err != nil {
			return nil, err
		}
		out.UV = uv
	}
	if raw.Skin != nil {
		skin, err := raw.Skin.build()
		if err != nil {
			return nil, err
		}
		out.Skin = skin
	}
	return out, nil
}

func (y *yamlUV) build() (*UVLayout, error) {
	units, err := ParseUnits(y.Units)
	if err != nil {
		return nil, layoutErr("uv", "%v", err)
	}
	ref := image.Pt(y.Reference.W, y.Reference.H)
	regions := make(map[PartID]Region, len(y.Parts))
	for name, r := range y.Parts {
		id, err := ParsePartID(name)
		if err != nil {
			return nil, layoutErr("uv", "%v", err)
		}
		reg := Region(r)
		if units == UnitPixels {
			if ref.X <= 0 || ref.Y <= 0 {
				return nil, layoutErr("uv", "pixel units need a positive reference size")
			}
			reg = Region{X: r.X / float64(ref.X), Y: r.Y / float64(ref.Y), W: r.W / float64(ref.X), H: r.H / float64(ref.Y)}
		}
		regions[id] = reg
	}
	return NewUVLayout(ref, regions)
}

func (y *yamlSkin) build() (*SkinLayout, error) {
	units, err := ParseUnits(y.Units)
	if err != nil {
		return nil, layoutErr("skin", "%v", err)
	}
	defaults := make(map[Group]PartID, len(y.Defaults))
	for gname, member := range y.Defaults {
		g, err := ParseGroup(gname)
		if err != nil {
			return nil, layoutErr("skin defaults", "%v", err)
		}
		id, err := parseMember(g, member)
		if err != nil {
			return nil, layoutErr("skin defaults", "%v", err)
		}
		defaults[g] = id
	}

	placements := make([]Placement, 0, len(y.Placements))
	for i, yp := range y.Placements {
		p := Placement{Name: yp.Name, Dest: Region(yp.Dest), Z: yp.Z, Optional: yp.Optional}
		subject := fmt.Sprintf("skin placement %d", i)
		if p.Group, err = ParseGroup(yp.Group); err != nil {
			return nil, layoutErr(subject, "%v", err)
		}
		if p.Transform, err = ParseTransform(yp.Transform); err != nil {
			return nil, layoutErr(subject, "%v", err)
		}
		if !p.Variant() {
			if p.Part, err = ParsePartID(yp.Part); err != nil {
				return nil, layoutErr(subject, "%v", err)
			}
		}
		placements = append(placements, p)
	}
	return NewSkinLayout(image.Pt(y.Canvas.W, y.Canvas.H), units, placements, defaults)
}

func parseMember(g Group, s string) (PartID, error) {
	if g == GroupEyes {
		return ParseEyes(s)
	}
	return ParsePartID(s)
}
