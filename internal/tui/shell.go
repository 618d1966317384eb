// Package tui is a terminal rendering shell for a single board.
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/DoyleJ11/volley-rotation-board/internal/engine"
	"github.com/DoyleJ11/volley-rotation-board/internal/view"
	pkgtypes "github.com/DoyleJ11/volley-rotation-board/pkg/types"
)

// CellPixels approximates the pixel width of one terminal column when
// a resize is reported to the engine as a viewport width.
const CellPixels = 8

const hint = "←/→ rotate  r reset  p profile  s snap  c clamp  q quit"

var (
	styleCourt  = tcell.StyleDefault.Background(tcell.GetColor("#15803d")).Foreground(tcell.GetColor("#bbf7d0"))
	styleNet    = styleCourt.Foreground(tcell.ColorWhite).Bold(true)
	styleHeader = tcell.StyleDefault.Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

type grab struct {
	team     engine.Team
	slot     int
	col, row int
}

// Shell owns the board and the screen. It is not safe for concurrent use;
// Run serialises all events onto one goroutine.
type Shell struct {
	screen     tcell.Screen
	board      engine.Board
	breakpoint float64
	log        *zap.Logger

	grab   *grab
	status string
	failed bool
}

func New(screen tcell.Screen, board engine.Board, breakpoint float64, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{screen: screen, board: board, breakpoint: breakpoint, log: log, status: hint}
}

func (s *Shell) Board() engine.Board { return s.board }

// Run polls screen events until ctx is done or the user quits.
func (s *Shell) Run(ctx context.Context) error {
	s.screen.EnableMouse()
	w, _ := s.screen.Size()
	s.apply(engine.Command{Type: engine.CmdViewportResize, Width: float64(w * CellPixels), Breakpoint: s.breakpoint})
	s.Draw()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go s.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !s.HandleEvent(ev) {
				return nil
			}
			s.Draw()
		}
	}
}

// HandleEvent returns false when the shell should exit.
func (s *Shell) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		s.HandleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		w, h := ev.Size()
		s.Resize(w, h)
	}
	return true
}

func (s *Shell) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		s.apply(engine.Command{Type: engine.CmdPrevRotation})
	case tcell.KeyRight:
		s.apply(engine.Command{Type: engine.CmdNextRotation})
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'h':
			s.apply(engine.Command{Type: engine.CmdPrevRotation})
		case 'l':
			s.apply(engine.Command{Type: engine.CmdNextRotation})
		case 'r':
			s.apply(engine.Command{Type: engine.CmdReset})
		case 'p':
			next := engine.ProfileCompact
			if s.board.Profile == engine.ProfileCompact {
				next = engine.ProfileWide
			}
			s.apply(engine.Command{Type: engine.CmdProfileChange, Profile: next})
		case 's':
			s.apply(engine.Command{Type: engine.CmdSetPolicy, Policy: engine.PolicySnap})
		case 'c':
			s.apply(engine.Command{Type: engine.CmdSetPolicy, Policy: engine.PolicyClamp})
		}
	}
	return true
}

// HandleMouse picks a player up on button press and drops it on release.
func (s *Shell) HandleMouse(x, y int, buttons tcell.ButtonMask) {
	if buttons&tcell.Button1 != 0 {
		if s.grab == nil {
			if team, slot, ok := s.hit(x, y); ok {
				s.grab = &grab{team: team, slot: slot, col: x, row: y}
			}
		}
		return
	}
	if s.grab == nil {
		return
	}
	g := s.grab
	s.grab = nil
	sx, sy, ok := s.scale()
	if !ok {
		return
	}
	s.apply(engine.Command{
		Type:   engine.CmdDragEnd,
		Team:   g.team,
		Slot:   g.slot,
		Offset: engine.Vector{DX: float64(x-g.col) * sx, DY: float64(y-g.row) * sy},
	})
}

func (s *Shell) Resize(w, h int) {
	s.apply(engine.Command{Type: engine.CmdViewportResize, Width: float64(w * CellPixels), Breakpoint: s.breakpoint})
	s.screen.Sync()
}

func (s *Shell) apply(cmd engine.Command) {
	events, next, err := engine.Apply(s.board, cmd)
	if err != nil {
		s.log.Info("command rejected", zap.String("cmd", string(cmd.Type)), zap.Error(err))
		s.status, s.failed = err.Error(), true
		return
	}
	s.board = next
	s.status, s.failed = hint, false
	if len(events) > 0 {
		s.log.Debug("command applied", zap.String("cmd", string(cmd.Type)), zap.Int("events", len(events)))
	}
}

// scale returns court units per terminal cell. Row 0 is the header and
// the last row is the status line.
func (s *Shell) scale() (sx, sy float64, ok bool) {
	w, h := s.screen.Size()
	if w <= 0 || h <= 2 {
		return 0, 0, false
	}
	l := engine.LayoutFor(s.board.Profile)
	return l.Width / float64(w), l.Height / float64(h-2), true
}

// cellOf maps a player's centre to the terminal cell its label starts in.
func (s *Shell) cellOf(p engine.PositionEntry, sx, sy float64) (col, row int) {
	f := float64(engine.PlayerFootprint)
	return int((p.X+f/2)/sx) - 1, 1 + int((p.Y+f/2)/sy)
}

func (s *Shell) hit(x, y int) (engine.Team, int, bool) {
	sx, sy, ok := s.scale()
	if !ok {
		return "", 0, false
	}
	snap := s.board.Snapshot()
	for _, team := range engine.Teams {
		tp := snap.Left
		if team == engine.TeamRight {
			tp = snap.Right
		}
		for slot, p := range tp {
			col, row := s.cellOf(p, sx, sy)
			if y == row && x >= col && x < col+2 {
				return team, slot, true
			}
		}
	}
	return "", 0, false
}

func (s *Shell) Draw() {
	s.screen.Clear()
	w, h := s.screen.Size()
	snap := pkgtypes.FromEngine("", 0, s.board.Snapshot())

	drawText(s.screen, 0, 0, w, styleHeader, view.Heading(snap))
	statusStyle := styleStatus
	if s.failed {
		statusStyle = styleError
	}
	drawText(s.screen, 0, h-1, w, statusStyle, s.status)

	sx, sy, ok := s.scale()
	if !ok {
		s.screen.Show()
		return
	}
	for y := 1; y < h-1; y++ {
		for x := 0; x < w; x++ {
			s.screen.SetContent(x, y, ' ', nil, styleCourt)
		}
	}
	if s.board.Profile == engine.ProfileCompact {
		row := 1 + (h-2)/2
		for x := 0; x < w; x++ {
			s.screen.SetContent(x, row, '─', nil, styleNet)
		}
	} else {
		col := w / 2
		for y := 1; y < h-1; y++ {
			s.screen.SetContent(col, y, '│', nil, styleNet)
		}
	}

	raw := s.board.Snapshot()
	for _, tp := range []engine.TeamPositions{raw.Left, raw.Right} {
		for _, p := range tp {
			col, row := s.cellOf(p, sx, sy)
			st := tcell.StyleDefault.
				Background(tcell.GetColor(view.ColorFor(p.Color))).
				Foreground(tcell.ColorWhite).
				Bold(true)
			drawText(s.screen, col, row, col+2, st, fmt.Sprintf("%-2s", p.Role))
		}
	}
	s.screen.Show()
}

func drawText(screen tcell.Screen, x, y, maxX int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= maxX {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
