package layout

import "fmt"

// Selection picks one member per variant group.
type Selection map[Group]PartID

// Eyes returns a selection choosing the given eye expression.
func Eyes(id PartID) Selection {
	return Selection{GroupEyes: id}
}

// DefaultSelection returns the defaults declared by skin.
func DefaultSelection(skin *SkinLayout) Selection {
	sel := Selection{}
	for g, id := range skin.defaults {
		sel[g] = id
	}
	return sel
}

// Member resolves the part drawn for g: the selected member, else the layout default.
func (s Selection) Member(skin *SkinLayout, g Group) (PartID, error) {
	if id, ok := s[g]; ok {
		if id.Group() != g {
			return 0, fmt.Errorf("%v is not a member of group %v", id, g)
		}
		return id, nil
	}
	if id, ok := skin.Default(g); ok {
		return id, nil
	}
	return 0, fmt.Errorf("no member selected for group %v and the layout declares no default", g)
}
