package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DoyleJ11/volley-rotation-board/internal/engine"
	"github.com/DoyleJ11/volley-rotation-board/internal/session"
)

func TestHub_Create_Get_SamePointer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, zap.NewNop())
	reply := make(chan *session.Session, 1)

	h.Inbox() <- CreateSession{Code: "ZED123", Board: engine.NewStandardBoard(), Reply: reply}
	s1 := <-reply

	h.Inbox() <- GetSession{Code: "ZED123", Reply: reply}
	s2 := <-reply

	if s1 == nil || s2 == nil || s1 != s2 {
		t.Fatalf("expected same session pointer")
	}
}

func TestHub_GetMissingIsNil(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, zap.NewNop())

	reply := make(chan *session.Session, 1)
	h.Inbox() <- GetSession{Code: "NOPE", Reply: reply}
	assert.Nil(t, <-reply)
}

func TestHub_RemoveStopsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, zap.NewNop())

	reply := make(chan *session.Session, 1)
	h.Inbox() <- EnsureSession{Code: "AB12CD", Board: engine.NewStandardBoard(), Reply: reply}
	s := <-reply
	require.NotNil(t, s)

	h.Inbox() <- RemoveSession{Code: "AB12CD"}

	select {
	case <-s.Done():
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("session still running after remove")
	}

	codes := make(chan []string, 1)
	h.Inbox() <- ListSessions{Reply: codes}
	assert.Empty(t, <-codes)
}

func TestHub_ListSessions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, zap.NewNop())

	reply := make(chan *session.Session, 1)
	for _, code := range []string{"A", "B"} {
		h.Inbox() <- CreateSession{Code: code, Board: engine.NewStandardBoard(), Reply: reply}
		<-reply
	}

	codes := make(chan []string, 1)
	h.Inbox() <- ListSessions{Reply: codes}
	assert.ElementsMatch(t, []string{"A", "B"}, <-codes)
}

func TestHub_ShutdownStopsAllSessions(t *testing.T) {
	h := NewHub(context.Background(), zap.NewNop())

	reply := make(chan *session.Session, 1)
	var sessions []*session.Session
	for _, code := range []string{"A", "B"} {
		h.Inbox() <- EnsureSession{Code: code, Board: engine.NewStandardBoard(), Reply: reply}
		sessions = append(sessions, <-reply)
	}

	h.Inbox() <- ShutdownHub{}

	for _, s := range sessions {
		select {
		case <-s.Done():
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("session still running after hub shutdown")
		}
	}
}
