package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridSnap_CentresFootprintInNearestCell(t *testing.T) {
	wide := Bounds{Width: 900, Height: 540}
	snap := GridSnap{Rows: 6, Cols: 9}

	cases := []struct {
		name    string
		current Coord
		d       Vector
		want    Coord
	}{
		{name: "no movement", current: Coord{85, 422}, want: Coord{122, 467}},
		{name: "rounds half up", current: Coord{310, 242}, d: Vector{DX: 40, DY: -10}, want: Coord{422, 287}},
		{name: "origin", current: Coord{10, 10}, d: Vector{DX: -10, DY: -10}, want: Coord{22, 17}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := snap.Resolve(tc.current, tc.d, wide, PlayerFootprint)
			assert.InDelta(t, tc.want.X, got.X, 1e-9)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-9)
		})
	}
}

func TestGridSnap_OutputIsOnPitch(t *testing.T) {
	b := Bounds{Width: 540, Height: 900}
	snap := GridSnap{Rows: 9, Cols: 6}
	for _, d := range []Vector{{13, 7}, {-200, 330}, {1000, -1000}} {
		got := snap.Resolve(Coord{242, 535}, d, b, PlayerFootprint)
		offX := (90.0 - PlayerFootprint) / 2
		offY := (100.0 - PlayerFootprint) / 2
		assert.InDelta(t, 0, math.Mod(got.X-offX, 90), 1e-9)
		assert.InDelta(t, 0, math.Mod(got.Y-offY, 100), 1e-9)
	}
}

func TestGridSnap_ZeroCellsDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		GridSnap{}.Resolve(Coord{1, 1}, Vector{}, Bounds{Width: 100, Height: 100}, 10)
		GridSnap{Rows: 3, Cols: 3}.Resolve(Coord{1, 1}, Vector{}, Bounds{}, 10)
	})
}

func TestBoundaryClamp(t *testing.T) {
	b := Bounds{Width: 900, Height: 540}

	cases := []struct {
		name    string
		current Coord
		d       Vector
		want    Coord
	}{
		{name: "inside is untouched", current: Coord{310, 242}, d: Vector{DX: 15.5, DY: -2}, want: Coord{325.5, 240}},
		{name: "past right edge", current: Coord{850, 100}, d: Vector{DX: 100}, want: Coord{872, 100}},
		{name: "past left and top", current: Coord{85, 62}, d: Vector{DX: -500, DY: -500}, want: Coord{28, 28}},
		{name: "past bottom", current: Coord{85, 422}, d: Vector{DY: 1e6}, want: Coord{85, 512}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BoundaryClamp{}.Resolve(tc.current, tc.d, b, PlayerFootprint))
		})
	}
}

func TestBoundaryClamp_NeverExceedsEdge(t *testing.T) {
	b := Bounds{Width: 900, Height: 540}
	for dx := 0.0; dx < 2000; dx += 37 {
		got := BoundaryClamp{}.Resolve(Coord{600, 200}, Vector{DX: dx}, b, PlayerFootprint)
		assert.LessOrEqual(t, got.X, b.Width-PlayerFootprint/2)
	}
}

func TestBoundaryClamp_CourtSmallerThanFootprint(t *testing.T) {
	got := BoundaryClamp{}.Resolve(Coord{5, 5}, Vector{}, Bounds{Width: 20, Height: 40}, PlayerFootprint)
	assert.Equal(t, Coord{10, 20}, got)
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicyClamp, ParsePolicy(" Clamp "))
	assert.Equal(t, PolicySnap, ParsePolicy("snap"))
	assert.Equal(t, PolicySnap, ParsePolicy("bogus"))
	assert.Equal(t, PolicySnap, ParsePolicy(""))
}

func TestPolicyFor_UsesLayoutGrid(t *testing.T) {
	assert.Equal(t, GridSnap{Rows: 9, Cols: 6}, PolicyFor(PolicySnap, LayoutFor(ProfileCompact)))
	assert.Equal(t, BoundaryClamp{}, PolicyFor(PolicyClamp, LayoutFor(ProfileCompact)))
}

func TestPolicyFor_UnknownKindSnaps(t *testing.T) {
	wide := LayoutFor(ProfileWide)
	assert.Equal(t, GridSnap{Rows: 6, Cols: 9}, PolicyFor("", wide))
	assert.Equal(t, GridSnap{Rows: 6, Cols: 9}, PolicyFor("bogus", wide))
	assert.Equal(t, PolicyFor(ParsePolicy("bogus"), wide), PolicyFor("bogus", wide))
}
