package engine

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var ErrNoMiddleBlocker = errors.New("roster has no middle blocker")
var ErrNoLibero = errors.New("roster has no libero")

type Role string

const (
	RoleSetter        Role = "S"
	RoleOutsideHitter Role = "OH"
	RoleMiddleBlocker Role = "MB"
	RoleOpposite      Role = "OP"
	RoleLibero        Role = "L"
)

type Team string

const (
	TeamLeft  Team = "left"
	TeamRight Team = "right"
)

var Teams = [2]Team{TeamLeft, TeamRight}

func ParseTeam(s string) (Team, bool) {
	switch Team(s) {
	case TeamLeft:
		return TeamLeft, true
	case TeamRight:
		return TeamRight, true
	default:
		return "", false
	}
}

type Player struct {
	Role  Role
	Color string
}

// Roster is indexed by roster slot, not by court position.
type Roster [SlotCount]Player

type Rosters struct {
	Left  Roster
	Right Roster
}

func (r Rosters) Team(t Team) (Roster, bool) {
	switch t {
	case TeamLeft:
		return r.Left, true
	case TeamRight:
		return r.Right, true
	default:
		return Roster{}, false
	}
}

var StandardRosters = Rosters{
	Left: Roster{
		{Role: RoleSetter, Color: "blue-600"},
		{Role: RoleOutsideHitter, Color: "blue-700"},
		{Role: RoleMiddleBlocker, Color: "blue-400"},
		{Role: RoleOpposite, Color: "blue-300"},
		{Role: RoleOutsideHitter, Color: "blue-500"},
		{Role: RoleLibero, Color: "yellow-400"},
	},
	Right: Roster{
		{Role: RoleSetter, Color: "red-600"},
		{Role: RoleOutsideHitter, Color: "red-700"},
		{Role: RoleMiddleBlocker, Color: "red-400"},
		{Role: RoleOpposite, Color: "red-300"},
		{Role: RoleOutsideHitter, Color: "red-500"},
		{Role: RoleLibero, Color: "yellow-600"},
	},
}

func (r Roster) indexOf(role Role) int {
	for i, p := range r {
		if p.Role == role {
			return i
		}
	}
	return -1
}

func (r Roster) count(role Role) int {
	n := 0
	for _, p := range r {
		if p.Role == role {
			n++
		}
	}
	return n
}

// SubstitutionPair returns the roster indices of the middle blocker and the
// libero, or -1 for whichever is missing.
func (r Roster) SubstitutionPair() (mb, libero int) {
	return r.indexOf(RoleMiddleBlocker), r.indexOf(RoleLibero)
}

// Validate reports every way the roster departs from a 5-1 template
// (one S, MB, OP and L, two OH).
func (r Roster) Validate() error {
	var err error
	if r.count(RoleMiddleBlocker) == 0 {
		err = multierr.Append(err, ErrNoMiddleBlocker)
	}
	if r.count(RoleLibero) == 0 {
		err = multierr.Append(err, ErrNoLibero)
	}
	want := map[Role]int{
		RoleSetter:        1,
		RoleOutsideHitter: 2,
		RoleMiddleBlocker: 1,
		RoleOpposite:      1,
		RoleLibero:        1,
	}
	for _, role := range []Role{RoleSetter, RoleOutsideHitter, RoleMiddleBlocker, RoleOpposite, RoleLibero} {
		if got := r.count(role); got > want[role] {
			err = multierr.Append(err, fmt.Errorf("roster has %d %s, want %d", got, role, want[role]))
		}
	}
	for i, p := range r {
		if _, ok := want[p.Role]; !ok {
			err = multierr.Append(err, fmt.Errorf("roster slot %d: unknown role %q", i, p.Role))
		}
	}
	return err
}

func (r Rosters) Validate() error {
	var err error
	if e := r.Left.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("left: %w", e))
	}
	if e := r.Right.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("right: %w", e))
	}
	return err
}
