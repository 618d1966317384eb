package types

import "github.com/DoyleJ11/volley-rotation-board/internal/engine"

// BoardSnapshot is the JSON form of what a rendering shell draws.
//
//	version: number
//	code: string
//	rotation: 1-6
//	profile: "wide" | "compact"
//	policy: "snap" | "clamp"
//	court: { width, height, rows, cols, footprint }
//	left / right: PlayerView[6], indexed by court slot
type BoardSnapshot struct {
	Version  int              `json:"version"`
	Code     string           `json:"code,omitempty"`
	Rotation int              `json:"rotation"`
	Profile  string           `json:"profile"`
	Policy   string           `json:"policy"`
	Court    engine.CourtView `json:"court"`
	Left     []PlayerView     `json:"left"`
	Right    []PlayerView     `json:"right"`
}

type PlayerView struct {
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	Position int     `json:"position"`
	FrontRow bool    `json:"front_row"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

func playerViews(tp engine.TeamPositions) []PlayerView {
	out := make([]PlayerView, 0, len(tp))
	for slot, p := range tp {
		out = append(out, PlayerView{
			Label:    string(p.Role),
			Color:    p.Color,
			Position: slot + 1,
			FrontRow: engine.IsFrontRow(slot),
			X:        p.X,
			Y:        p.Y,
		})
	}
	return out
}

func FromEngine(code string, version int, s engine.Snapshot) BoardSnapshot {
	return BoardSnapshot{
		Version:  version,
		Code:     code,
		Rotation: s.Rotation + 1,
		Profile:  s.Profile.String(),
		Policy:   string(s.Policy),
		Court:    s.Court,
		Left:     playerViews(s.Left),
		Right:    playerViews(s.Right),
	}
}
