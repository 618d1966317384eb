package engine

import (
	"math"
	"strings"
)

type Vector struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type Bounds struct {
	Width  float64
	Height float64
}

// Policy turns a proposed drag into the coordinate that gets stored.
type Policy interface {
	Resolve(current Coord, d Vector, b Bounds, footprint float64) Coord
}

type PolicyKind string

const (
	PolicySnap  PolicyKind = "snap"
	PolicyClamp PolicyKind = "clamp"
)

// ParsePolicy defaults to snapping.
func ParsePolicy(s string) PolicyKind {
	if PolicyKind(strings.ToLower(strings.TrimSpace(s))) == PolicyClamp {
		return PolicyClamp
	}
	return PolicySnap
}

// PolicyFor snaps to the layout grid for any kind other than clamp.
func PolicyFor(kind PolicyKind, l Layout) Policy {
	if kind == PolicyClamp {
		return BoundaryClamp{}
	}
	return GridSnap{Rows: l.Rows, Cols: l.Cols}
}

// GridSnap centres the footprint in the nearest grid cell.
type GridSnap struct {
	Rows int
	Cols int
}

func snapAxis(v, dim float64, cells int, footprint float64) float64 {
	if cells <= 0 {
		cells = 1
	}
	pitch := dim / float64(cells)
	if pitch == 0 {
		return 0
	}
	return math.Round(v/pitch)*pitch + (pitch-footprint)/2
}

func (g GridSnap) Resolve(current Coord, d Vector, b Bounds, footprint float64) Coord {
	return Coord{
		X: snapAxis(current.X+d.DX, b.Width, g.Cols, footprint),
		Y: snapAxis(current.Y+d.DY, b.Height, g.Rows, footprint),
	}
}

// BoundaryClamp keeps the footprint fully inside the court and does no snapping.
type BoundaryClamp struct{}

func clampAxis(v, dim, footprint float64) float64 {
	lo, hi := footprint/2, dim-footprint/2
	if hi < lo {
		return dim / 2
	}
	return math.Min(math.Max(v, lo), hi)
}

func (BoundaryClamp) Resolve(current Coord, d Vector, b Bounds, footprint float64) Coord {
	return Coord{
		X: clampAxis(current.X+d.DX, b.Width, footprint),
		Y: clampAxis(current.Y+d.DY, b.Height, footprint),
	}
}
