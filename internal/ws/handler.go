package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/DoyleJ11/volley-rotation-board/internal/engine"
	"github.com/DoyleJ11/volley-rotation-board/internal/hub"
	"github.com/DoyleJ11/volley-rotation-board/internal/session"
	"github.com/DoyleJ11/volley-rotation-board/internal/types"
	pkgtypes "github.com/DoyleJ11/volley-rotation-board/pkg/types"
)

const readTimeout = 5 * time.Minute

func Handler(h *hub.Hub, log *zap.Logger, breakpoint float64) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		s := <-reply
		if s == nil {
			http.Error(w, "board not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		clientID := randID(6)
		clog := log.With(zap.String("code", code), zap.String("client", clientID))

		s.Inbox() <- session.Join{ClientID: clientID, Outbox: out}
		defer func() {
			select {
			case s.Inbox() <- session.Leave{ClientID: clientID}:
			case <-s.Done():
			}
		}()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				var snap session.Snapshot
				select {
				case <-writeCtx.Done():
					return
				case next, ok := <-out:
					if !ok {
						return
					}
					snap = next
				}
				state := pkgtypes.FromEngine(code, snap.Version, snap.View)
				msg := types.ServerMessage{Type: pkgtypes.MsgStateSnapshot, Version: snap.Version, State: &state}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
					clog.Debug("snapshot write failed", zap.Error(err))
				}
				cancel()
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					clog.Debug("websocket read ended", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := toEngineCommand(cm, breakpoint)
			if !ok {
				writeError(r.Context(), conn, "unknown message")
				continue
			}

			res := make(chan session.Result, 1)
			s.Inbox() <- session.FromClient{Cmd: cmd, Reply: res}
			select {
			case result := <-res:
				if result.Err != nil {
					writeError(r.Context(), conn, result.Err.Error())
				}
			case <-s.Done():
				return
			}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, text string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: pkgtypes.MsgError, Error: text})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func toEngineCommand(m types.ClientMessage, breakpoint float64) (engine.Command, bool) {
	switch m.Type {
	case pkgtypes.MsgDragEnd:
		team, ok := engine.ParseTeam(m.Team)
		if !ok {
			return engine.Command{}, false
		}
		return engine.Command{
			Type:   engine.CmdDragEnd,
			Team:   team,
			Slot:   m.Slot,
			Offset: engine.Vector{DX: m.DX, DY: m.DY},
		}, true
	case pkgtypes.MsgReset:
		return engine.Command{Type: engine.CmdReset}, true
	case pkgtypes.MsgNextRotation:
		return engine.Command{Type: engine.CmdNextRotation}, true
	case pkgtypes.MsgPrevRotation:
		return engine.Command{Type: engine.CmdPrevRotation}, true
	case pkgtypes.MsgProfileChange:
		return engine.Command{Type: engine.CmdProfileChange, Profile: engine.ParseProfile(m.Profile)}, true
	case pkgtypes.MsgViewport:
		return engine.Command{Type: engine.CmdViewportResize, Width: m.Width, Breakpoint: breakpoint}, true
	case pkgtypes.MsgSetPolicy:
		return engine.Command{Type: engine.CmdSetPolicy, Policy: engine.ParsePolicy(m.Policy)}, true
	default:
		return engine.Command{}, false
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
