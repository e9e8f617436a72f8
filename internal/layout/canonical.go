package layout

import "image"

const (
	bodySize = 96
	feetW    = 64
	feetH    = 32
	eyeSize  = 32
	handSize = 32
)

// TeeUV is the standard 256x128 tee sheet arrangement.
var TeeUV = MustUVLayout(image.Pt(256, 128), map[PartID]image.Rectangle{
	Body:         image.Rect(0, 0, bodySize, bodySize),
	BodyShadow:   image.Rect(bodySize, 0, 2*bodySize, bodySize),
	Hand:         image.Rect(2*bodySize, 0, 2*bodySize+handSize, handSize),
	HandShadow:   image.Rect(2*bodySize+handSize, 0, 2*bodySize+2*handSize, handSize),
	Feet:         image.Rect(2*bodySize, handSize, 2*bodySize+feetW, handSize+feetH),
	FeetShadow:   image.Rect(2*bodySize, handSize+feetH, 2*bodySize+feetW, handSize+2*feetH),
	EyesNormal:   eyeRect(0),
	EyesAngry:    eyeRect(1),
	EyesPain:     eyeRect(2),
	EyesHappy:    eyeRect(3),
	EyesEmpty:    eyeRect(4),
	EyesSurprise: eyeRect(5),
})

func eyeRect(i int) image.Rectangle {
	x := 64 + i*eyeSize
	return image.Rect(x, bodySize, x+eyeSize, bodySize+eyeSize)
}

// TeeSkin is the standard 96x64 rendered tee: body scaled to 0.66, eyes to 0.8, the
// second eye mirrored.
var TeeSkin = MustSkinLayout(image.Pt(96, 64), UnitPixels, []Placement{
	{Name: "back_feet_shadow", Part: FeetShadow, Dest: Region{8, 30, feetW, feetH}, Z: 0, Optional: true},
	{Name: "body_shadow", Part: BodyShadow, Dest: Region{16, 0, 63, 63}, Z: 1, Optional: true},
	{Name: "front_feet_shadow", Part: FeetShadow, Dest: Region{24, 30, feetW, feetH}, Z: 2, Optional: true},
	{Name: "back_feet", Part: Feet, Dest: Region{8, 30, feetW, feetH}, Z: 3},
	{Name: "body", Part: Body, Dest: Region{16, 0, 63, 63}, Z: 4},
	{Name: "front_feet", Part: Feet, Dest: Region{24, 30, feetW, feetH}, Z: 5},
	{Name: "first_eyes", Group: GroupEyes, Dest: Region{39, 18, 25, 25}, Z: 6},
	{Name: "second_eyes", Group: GroupEyes, Dest: Region{47, 18, 25, 25}, Z: 7, Transform: FlipH},
}, map[Group]PartID{GroupEyes: EyesHappy})
