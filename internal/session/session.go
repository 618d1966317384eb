package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/DoyleJ11/volley-rotation-board/internal/engine"
)

type Msg interface{ isSessionMsg() }

// FromClient carries one board command. Reply is optional and buffered by the sender.
type FromClient struct {
	Cmd   engine.Command
	Reply chan<- Result
}

func (FromClient) isSessionMsg() {}

type Result struct {
	Events []engine.Event
	Err    error
}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Snapshot struct {
	Version int
	View    engine.Snapshot
}

type View struct {
	Version    int
	NumClients int
	Board      engine.Board
}

// Session owns one board. Every command is applied on the loop goroutine,
// so no command is ever observed half-applied.
type Session struct {
	inbox   chan Msg
	board   engine.Board
	version int
	clients map[string]chan Snapshot
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewSession(parent context.Context, initial engine.Board, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		inbox:   make(chan Msg, 64),
		board:   initial,
		version: 0,
		clients: make(map[string]chan Snapshot),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go s.loop()
	return s
}

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.join(msg)

			case Leave:
				if ch, ok := s.clients[msg.ClientID]; ok {
					close(ch)
					delete(s.clients, msg.ClientID)
				}
				s.log.Debug("client left", zap.String("client", msg.ClientID))

			case FromClient:
				events, next, err := engine.Apply(s.board, msg.Cmd)
				if msg.Reply != nil {
					msg.Reply <- Result{Events: events, Err: err}
				}
				if err != nil {
					s.log.Info("command rejected", zap.String("cmd", string(msg.Cmd.Type)), zap.Error(err))
					break
				}
				if len(events) == 0 {
					// idempotent command, nothing to broadcast
					break
				}
				s.board = next
				s.version++
				s.log.Debug("command applied",
					zap.String("cmd", string(msg.Cmd.Type)),
					zap.Int("version", s.version),
					zap.Int("rotation", next.Rotation),
					zap.Stringer("profile", next.Profile),
				)
				s.broadcast(s.snapshot())

			case GetState:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					Board:      s.board,
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) join(msg Join) {
	select {
	case msg.Outbox <- s.snapshot():
	default:
		// an outbox that cannot take the first snapshot will never keep up
		s.log.Warn("refusing client with full outbox", zap.String("client", msg.ClientID))
		close(msg.Outbox)
		return
	}
	s.clients[msg.ClientID] = msg.Outbox
	s.log.Debug("client joined", zap.String("client", msg.ClientID), zap.Int("clients", len(s.clients)))
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{Version: s.version, View: s.board.Snapshot()}
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch) // no more snapshots for this client
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
		default:
			// Client is slow/full - drop them.
			s.log.Warn("dropping slow client", zap.String("client", id))
			close(ch)
			delete(s.clients, id)
		}
	}
}

func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the session loop has been cancelled.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }
