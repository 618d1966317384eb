package httpapi

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/volley-rotation-board/internal/engine"
	"github.com/DoyleJ11/volley-rotation-board/internal/export"
	"github.com/DoyleJ11/volley-rotation-board/internal/hub"
	"github.com/DoyleJ11/volley-rotation-board/internal/session"
	"github.com/DoyleJ11/volley-rotation-board/internal/view"
	pkgtypes "github.com/DoyleJ11/volley-rotation-board/pkg/types"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateBoard(h *hub.Hub, policy engine.PolicyKind, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			if lookup(h, c) == nil {
				code = c
				break
			}
			log.Debug("collision on code, regenerating", zap.String("code", c))
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.EnsureSession{Code: code, Board: engine.NewBoard(engine.StandardDefaults, policy), Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create board", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

// DeleteBoard stops the board's session and disconnects its clients.
func DeleteBoard(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.ToUpper(chi.URLParam(r, "code"))
		if lookup(h, code) == nil {
			http.Error(w, "board not found", http.StatusNotFound)
			return
		}
		h.Inbox() <- hub.RemoveSession{Code: code}
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetBoard(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := boardSnapshot(w, r, h)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func CourtPage(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := boardSnapshot(w, r, h)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if err := view.Page(snap).Render(r.Context(), &buf); err != nil {
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

func CourtImage(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := boardSnapshot(w, r, h)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if err := export.WriteWebP(&buf, snap); err != nil {
			log.Error("court export failed", zap.String("code", snap.Code), zap.Error(err))
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/webp")
		_, _ = buf.WriteTo(w)
	}
}

func Healthz(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan []string, 1)
		h.Inbox() <- hub.ListSessions{Reply: reply}
		writeJSON(w, http.StatusOK, struct {
			Status string `json:"status"`
			Boards int    `json:"boards"`
		}{Status: "ok", Boards: len(<-reply)})
	}
}

func lookup(h *hub.Hub, code string) *session.Session {
	reply := make(chan *session.Session, 1)
	h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
	return <-reply
}

// boardSnapshot writes a 404 and returns false when the code is unknown.
func boardSnapshot(w http.ResponseWriter, r *http.Request, h *hub.Hub) (pkgtypes.BoardSnapshot, bool) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	s := lookup(h, code)
	if s == nil {
		http.Error(w, "board not found", http.StatusNotFound)
		return pkgtypes.BoardSnapshot{}, false
	}

	reply := make(chan session.View, 1)
	select {
	case s.Inbox() <- session.GetState{Reply: reply}:
	case <-s.Done():
		http.Error(w, "board closed", http.StatusGone)
		return pkgtypes.BoardSnapshot{}, false
	}
	select {
	case v := <-reply:
		return pkgtypes.FromEngine(code, v.Version, v.Board.Snapshot()), true
	case <-s.Done():
		http.Error(w, "board closed", http.StatusGone)
		return pkgtypes.BoardSnapshot{}, false
	case <-r.Context().Done():
		return pkgtypes.BoardSnapshot{}, false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
