package engine

import (
	"math"
	"strings"
)

type Profile uint8

const (
	ProfileWide Profile = iota
	ProfileCompact

	profileCount = 2
)

var Profiles = [profileCount]Profile{ProfileWide, ProfileCompact}

func (p Profile) String() string {
	if p == ProfileCompact {
		return "compact"
	}
	return "wide"
}

func (p Profile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Profile) UnmarshalText(b []byte) error {
	*p = ParseProfile(string(b))
	return nil
}

// index folds anything out of range onto the wide profile.
func (p Profile) index() int {
	if p == ProfileCompact {
		return 1
	}
	return 0
}

// ParseProfile never fails: anything it does not recognise is the wide profile.
func ParseProfile(s string) Profile {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compact", "mobile", "narrow":
		return ProfileCompact
	default:
		return ProfileWide
	}
}

const DefaultCompactBreakpoint = 768.0

// ProfileForWidth is the viewport adapter: compact at or below the breakpoint.
func ProfileForWidth(width, breakpoint float64) Profile {
	if math.IsNaN(width) || width <= 0 {
		return ProfileWide
	}
	if breakpoint <= 0 {
		breakpoint = DefaultCompactBreakpoint
	}
	if width <= breakpoint {
		return ProfileCompact
	}
	return ProfileWide
}

type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Layout struct {
	Width     float64
	Height    float64
	Rows      int
	Cols      int
	Footprint float64
	Left      [SlotCount]Coord
	Right     [SlotCount]Coord
}

func (l Layout) Bounds() Bounds {
	return Bounds{Width: l.Width, Height: l.Height}
}

func (l Layout) Team(t Team) ([SlotCount]Coord, bool) {
	switch t {
	case TeamLeft:
		return l.Left, true
	case TeamRight:
		return l.Right, true
	default:
		return [SlotCount]Coord{}, false
	}
}

const PlayerFootprint = 56

// Slot order is court position 1..6. Teams mirror each other across the net.
var layouts = [profileCount]Layout{
	{
		Width: 900, Height: 540, Rows: 6, Cols: 9, Footprint: PlayerFootprint,
		Left: [SlotCount]Coord{
			{85, 422}, {310, 422}, {310, 242}, {310, 62}, {85, 62}, {85, 242},
		},
		Right: [SlotCount]Coord{
			{760, 62}, {535, 62}, {535, 242}, {535, 422}, {760, 422}, {760, 242},
		},
	},
	{
		Width: 540, Height: 900, Rows: 9, Cols: 6, Footprint: PlayerFootprint,
		Left: [SlotCount]Coord{
			{422, 760}, {422, 535}, {242, 535}, {85, 535}, {85, 760}, {242, 760},
		},
		Right: [SlotCount]Coord{
			{85, 85}, {85, 310}, {242, 310}, {422, 310}, {422, 85}, {242, 85},
		},
	},
}

func LayoutFor(p Profile) Layout {
	return layouts[p.index()]
}
