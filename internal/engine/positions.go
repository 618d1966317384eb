package engine

import "fmt"

type PositionEntry struct {
	Role  Role    `json:"label"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type TeamPositions [SlotCount]PositionEntry

type RotationPositions struct {
	Left  TeamPositions `json:"left"`
	Right TeamPositions `json:"right"`
}

func (r *RotationPositions) team(t Team) (*TeamPositions, bool) {
	switch t {
	case TeamLeft:
		return &r.Left, true
	case TeamRight:
		return &r.Right, true
	default:
		return nil, false
	}
}

// PositionTable holds every rotation for one profile. It is plain value data
// with no pointers, so a copy never aliases the original.
type PositionTable [RotationCount]RotationPositions

func (t PositionTable) Clone() PositionTable {
	var out PositionTable
	for r := range t {
		out[r] = RotationPositions{Left: t[r].Left, Right: t[r].Right}
	}
	return out
}

func seedTeam(roster Roster, lineup Lineup, coords [SlotCount]Coord) TeamPositions {
	var out TeamPositions
	for slot, idx := range lineup {
		var p Player
		if idx >= 0 && idx < SlotCount {
			p = roster[idx]
		}
		out[slot] = PositionEntry{Role: p.Role, Color: p.Color, X: coords[slot].X, Y: coords[slot].Y}
	}
	return out
}

func Seed(rosters Rosters, lineups TeamLineups, layout Layout) PositionTable {
	var out PositionTable
	for r := range out {
		out[r] = RotationPositions{
			Left:  seedTeam(rosters.Left, lineups.Left[r], layout.Left),
			Right: seedTeam(rosters.Right, lineups.Right[r], layout.Right),
		}
	}
	return out
}

func ApplyDrag(t PositionTable, rotation int, team Team, slot int, c Coord) (PositionTable, error) {
	if slot < 0 || slot >= SlotCount {
		return t, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	out := t.Clone()
	rot := &out[WrapRotation(rotation)]
	tp, ok := rot.team(team)
	if !ok {
		return t, fmt.Errorf("%w: %q", ErrUnknownTeam, team)
	}
	tp[slot].X = c.X
	tp[slot].Y = c.Y
	return out, nil
}

func ResetRotation(t, defaults PositionTable, rotation int) PositionTable {
	out := t.Clone()
	r := WrapRotation(rotation)
	out[r] = defaults.Clone()[r]
	return out
}

type TeamLineups struct {
	Left  [RotationCount]Lineup
	Right [RotationCount]Lineup
}

// Defaults is computed once and never mutated. Accessors hand out copies.
type Defaults struct {
	rosters Rosters
	lineups TeamLineups
	tables  [profileCount]PositionTable
}

func NewDefaults(rosters Rosters, base Lineup) *Defaults {
	lmb, ll := rosters.Left.SubstitutionPair()
	rmb, rl := rosters.Right.SubstitutionPair()
	d := &Defaults{
		rosters: rosters,
		lineups: TeamLineups{
			Left:  GenerateRotations(base, lmb, ll),
			Right: GenerateRotations(base, rmb, rl),
		},
	}
	for _, p := range Profiles {
		d.tables[p.index()] = Seed(rosters, d.lineups, LayoutFor(p))
	}
	return d
}

var StandardDefaults = NewDefaults(StandardRosters, BaseOrder)

func (d *Defaults) Table(p Profile) PositionTable {
	return d.tables[p.index()].Clone()
}

func (d *Defaults) Lineups() TeamLineups {
	return d.lineups
}

func (d *Defaults) Rosters() Rosters {
	return d.rosters
}
