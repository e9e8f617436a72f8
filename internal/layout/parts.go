package layout

import (
	"fmt"
	"strings"
)

// PartID identifies one drawable part of a tee skin.
type PartID uint8

const (
	Body PartID = iota
	BodyShadow
	Hand
	HandShadow
	Feet
	FeetShadow
	EyesNormal
	EyesAngry
	EyesPain
	EyesHappy
	EyesEmpty
	EyesSurprise

	numParts
)

var partNames = [numParts]string{
	Body:         "body",
	BodyShadow:   "body_shadow",
	Hand:         "hand",
	HandShadow:   "hand_shadow",
	Feet:         "feet",
	FeetShadow:   "feet_shadow",
	EyesNormal:   "eyes_normal",
	EyesAngry:    "eyes_angry",
	EyesPain:     "eyes_pain",
	EyesHappy:    "eyes_happy",
	EyesEmpty:    "eyes_empty",
	EyesSurprise: "eyes_surprise",
}

// AllParts returns every known part in declaration order.
func AllParts() []PartID {
	out := make([]PartID, 0, numParts)
	for id := PartID(0); id < numParts; id++ {
		out = append(out, id)
	}
	return out
}

// Valid reports whether id is one of the declared parts.
func (id PartID) Valid() bool { return id < numParts }

func (id PartID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("part(%d)", uint8(id))
	}
	return partNames[id]
}

// Shadow reports whether id is the shadow counterpart of another part.
func (id PartID) Shadow() bool {
	return id == BodyShadow || id == HandShadow || id == FeetShadow
}

// ShadowOf returns the shadow counterpart of id, if it has one.
func (id PartID) ShadowOf() (PartID, bool) {
	switch id {
	case Body:
		return BodyShadow, true
	case Hand:
		return HandShadow, true
	case Feet:
		return FeetShadow, true
	}
	return 0, false
}

// Group returns the variant group id belongs to, or GroupNone.
func (id PartID) Group() Group {
	if id >= EyesNormal && id <= EyesSurprise {
		return GroupEyes
	}
	return GroupNone
}

// ParsePartID resolves a snake_case part name.
func ParsePartID(s string) (PartID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for id, name := range partNames {
		if name == s {
			return PartID(id), nil
		}
	}
	return 0, fmt.Errorf("unknown part %q", s)
}

// ParseEyes accepts either the bare expression ("happy") or the full part name ("eyes_happy").
func ParseEyes(s string) (PartID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "eyes_") {
		s = "eyes_" + s
	}
	id, err := ParsePartID(s)
	if err != nil {
		return 0, fmt.Errorf("unknown eye expression %q", strings.TrimPrefix(s, "eyes_"))
	}
	return id, nil
}

// Group is a set of mutually exclusive parts; exactly one member is drawn per composition.
type Group uint8

const (
	GroupNone Group = iota
	GroupEyes
)

func (g Group) String() string {
	switch g {
	case GroupNone:
		return "none"
	case GroupEyes:
		return "eyes"
	}
	return fmt.Sprintf("group(%d)", uint8(g))
}

// Members lists the parts belonging to g.
func (g Group) Members() []PartID {
	var out []PartID
	if g == GroupNone {
		return out
	}
	for id := PartID(0); id < numParts; id++ {
		if id.Group() == g {
			out = append(out, id)
		}
	}
	return out
}

// ParseGroup resolves a group name; the empty string means GroupNone.
func ParseGroup(s string) (Group, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return GroupNone, nil
	case "eyes":
		return GroupEyes, nil
	}
	return GroupNone, fmt.Errorf("unknown variant group %q", s)
}
