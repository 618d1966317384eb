package engine

import (
	"errors"
	"fmt"
)

var ErrUnknownTeam = errors.New("unknown team")
var ErrSlotOutOfRange = errors.New("slot out of range")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Board struct {
	Rotation int
	Profile  Profile
	Policy   PolicyKind
	Live     [profileCount]PositionTable

	defaults *Defaults
}

type CommandType string

const (
	CmdDragEnd        CommandType = "DragEnd"
	CmdReset          CommandType = "Reset"
	CmdNextRotation   CommandType = "NextRotation"
	CmdPrevRotation   CommandType = "PrevRotation"
	CmdProfileChange  CommandType = "ProfileChange"
	CmdViewportResize CommandType = "ViewportResize"
	CmdSetPolicy      CommandType = "SetPolicy"
)

/*
	CmdDragEnd        -> EvtPlayerMoved (resolved through the board's drag policy)
	CmdReset          -> EvtRotationReset
	CmdNextRotation   -> EvtRotationChanged
	CmdPrevRotation   -> EvtRotationChanged
	CmdProfileChange  -> EvtProfileChanged, nothing when the profile is already active
	CmdViewportResize -> same as CmdProfileChange once the width is mapped to a profile
	CmdSetPolicy      -> EvtPolicyChanged, nothing when unchanged
*/

type Command struct {
	Type       CommandType
	Team       Team
	Slot       int
	Offset     Vector
	Profile    Profile
	Width      float64
	Breakpoint float64
	Policy     PolicyKind
}

type EventType string

const (
	EvtPlayerMoved     EventType = "PlayerMoved"
	EvtRotationReset   EventType = "RotationReset"
	EvtRotationChanged EventType = "RotationChanged"
	EvtProfileChanged  EventType = "ProfileChanged"
	EvtPolicyChanged   EventType = "PolicyChanged"
)

type Event struct {
	Type     EventType
	Rotation int
	Profile  Profile
	Team     Team
	Slot     int
	Position Coord
	Policy   PolicyKind
}

// Apply never mutates b. On error the returned board is b unchanged.
func Apply(b Board, cmd Command) ([]Event, Board, error) {
	newBoard := b

	switch cmd.Type {
	case CmdDragEnd:
		if _, ok := ParseTeam(string(cmd.Team)); !ok {
			return nil, b, fmt.Errorf("%w: %q", ErrUnknownTeam, cmd.Team)
		}
		if cmd.Slot < 0 || cmd.Slot >= SlotCount {
			return nil, b, fmt.Errorf("%w: %d", ErrSlotOutOfRange, cmd.Slot)
		}

		layout := LayoutFor(b.Profile)
		live := b.Live[b.Profile.index()]
		entry := b.entry(live, cmd.Team, cmd.Slot)
		pos := PolicyFor(b.Policy, layout).Resolve(Coord{X: entry.X, Y: entry.Y}, cmd.Offset, layout.Bounds(), layout.Footprint)

		table, err := ApplyDrag(live, b.Rotation, cmd.Team, cmd.Slot, pos)
		if err != nil {
			return nil, b, err
		}
		newBoard.Live[b.Profile.index()] = table

		events := []Event{
			{Type: EvtPlayerMoved, Rotation: b.Rotation, Profile: b.Profile, Team: cmd.Team, Slot: cmd.Slot, Position: pos},
		}
		return events, newBoard, nil

	case CmdReset:
		idx := b.Profile.index()
		newBoard.Live[idx] = ResetRotation(b.Live[idx], b.defaultsOrStandard().Table(b.Profile), b.Rotation)
		return []Event{{Type: EvtRotationReset, Rotation: b.Rotation, Profile: b.Profile}}, newBoard, nil

	case CmdNextRotation, CmdPrevRotation:
		step := 1
		if cmd.Type == CmdPrevRotation {
			step = -1
		}
		newBoard.Rotation = WrapRotation(b.Rotation + step)
		return []Event{{Type: EvtRotationChanged, Rotation: newBoard.Rotation, Profile: b.Profile}}, newBoard, nil

	case CmdProfileChange, CmdViewportResize:
		p := ParseProfile(cmd.Profile.String())
		if cmd.Type == CmdViewportResize {
			p = ProfileForWidth(cmd.Width, cmd.Breakpoint)
		}
		if p == b.Profile {
			return nil, b, nil
		}
		newBoard.Profile = p
		return []Event{{Type: EvtProfileChanged, Rotation: b.Rotation, Profile: p}}, newBoard, nil

	case CmdSetPolicy:
		kind := ParsePolicy(string(cmd.Policy))
		if kind == b.Policy {
			return nil, b, nil
		}
		newBoard.Policy = kind
		return []Event{{Type: EvtPolicyChanged, Policy: kind}}, newBoard, nil

	default:
		return nil, b, ErrUnsupportedCommand
	}
}

func (b Board) entry(t PositionTable, team Team, slot int) PositionEntry {
	rot := t[WrapRotation(b.Rotation)]
	if team == TeamRight {
		return rot.Right[slot]
	}
	return rot.Left[slot]
}

func (b Board) defaultsOrStandard() *Defaults {
	if b.defaults == nil {
		return StandardDefaults
	}
	return b.defaults
}

// Table returns a copy of the live table for p.
func (b Board) Table(p Profile) PositionTable {
	return b.Live[p.index()].Clone()
}

type CourtView struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Rows      int     `json:"rows"`
	Cols      int     `json:"cols"`
	Footprint float64 `json:"footprint"`
}

type Snapshot struct {
	Rotation int           `json:"rotation"`
	Profile  Profile       `json:"profile"`
	Policy   PolicyKind    `json:"policy"`
	Court    CourtView     `json:"court"`
	Left     TeamPositions `json:"left"`
	Right    TeamPositions `json:"right"`
}

// Snapshot is what a rendering shell draws: the active rotation of the active profile.
func (b Board) Snapshot() Snapshot {
	layout := LayoutFor(b.Profile)
	rot := b.Live[b.Profile.index()][WrapRotation(b.Rotation)]
	return Snapshot{
		Rotation: WrapRotation(b.Rotation),
		Profile:  b.Profile,
		Policy:   b.Policy,
		Court: CourtView{
			Width:     layout.Width,
			Height:    layout.Height,
			Rows:      layout.Rows,
			Cols:      layout.Cols,
			Footprint: layout.Footprint,
		},
		Left:  rot.Left,
		Right: rot.Right,
	}
}
