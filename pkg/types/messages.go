package types

// Client -> Server
// DragEnd:
//   team: "left" | "right"
//   slot: 0-5 (court position - 1)
//   dx, dy: number (pointer displacement in court pixels)
//
// Reset: {}                       restores the current rotation of the active profile
// NextRotation / PrevRotation: {}
//
// ProfileChange:
//   profile: "wide" | "compact"   (anything else means wide)
//
// Viewport:
//   width: number                 mapped to a profile through the compact breakpoint
//
// SetPolicy:
//   policy: "snap" | "clamp"

// Server -> Client
// StateSnapshot: see BoardSnapshot
// Error:
//   error: string

const (
	MsgDragEnd       = "DragEnd"
	MsgReset         = "Reset"
	MsgNextRotation  = "NextRotation"
	MsgPrevRotation  = "PrevRotation"
	MsgProfileChange = "ProfileChange"
	MsgViewport      = "Viewport"
	MsgSetPolicy     = "SetPolicy"

	MsgStateSnapshot = "StateSnapshot"
	MsgError         = "Error"
)
