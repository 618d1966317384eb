package types

import pkgtypes "github.com/DoyleJ11/volley-rotation-board/pkg/types"

type ClientMessage struct {
	Type    string  `json:"type"`
	Team    string  `json:"team,omitempty"`
	Slot    int     `json:"slot,omitempty"`
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`
	Profile string  `json:"profile,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Policy  string  `json:"policy,omitempty"`
}

type ServerMessage struct {
	Type    string                  `json:"type"` // "StateSnapshot" | "Error"
	Version int                     `json:"version,omitempty"`
	State   *pkgtypes.BoardSnapshot `json:"state,omitempty"`
	Error   string                  `json:"error,omitempty"`
}
