package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DoyleJ11/volley-rotation-board/internal/engine"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			// channel closed → that's fine; no further snapshots possible
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
		// good: no snapshot
	}
}

func recvView(t *testing.T, ch <-chan View, within time.Duration) View {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(within):
		t.Fatalf("timed out waiting for view")
		return View{} // unreachable
	}
}

func newTestSession(t *testing.T, policy engine.PolicyKind) *Session {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewSession(ctx, engine.NewBoard(engine.StandardDefaults, policy), zap.NewNop())
}

func TestSession_DragBroadcastsSnapshotAndVersionIncrements(t *testing.T) {
	s := newTestSession(t, engine.PolicyClamp)

	clientOut := make(chan Snapshot, 2)
	s.Inbox() <- Join{ClientID: "c1", Outbox: clientOut}

	first := recvSnapshot(t, clientOut, 100*time.Millisecond)
	require.Equal(t, 0, first.Version)
	start := first.View.Left[0]

	s.Inbox() <- FromClient{Cmd: engine.Command{
		Type:   engine.CmdDragEnd,
		Team:   engine.TeamLeft,
		Slot:   0,
		Offset: engine.Vector{DX: 10, DY: -5},
	}}

	next := recvSnapshot(t, clientOut, 100*time.Millisecond)
	assert.Equal(t, 1, next.Version)
	assert.Equal(t, start.X+10, next.View.Left[0].X)
	assert.Equal(t, start.Y-5, next.View.Left[0].Y)

	s.Inbox() <- Shutdown{}
}

func TestSession_RejectedCommandRepliesWithErrorAndDoesNotBroadcast(t *testing.T) {
	s := newTestSession(t, engine.PolicySnap)

	out := make(chan Snapshot, 2)
	s.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	reply := make(chan Result, 1)
	s.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdDragEnd, Team: "nobody"}, Reply: reply}

	select {
	case res := <-reply:
		assert.ErrorIs(t, res.Err, engine.ErrUnknownTeam)
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timed out waiting for reply")
	}
	recvNoSnapshot(t, out, 100*time.Millisecond)
}

func TestSession_IdempotentProfileChangeDoesNotBumpVersion(t *testing.T) {
	s := newTestSession(t, engine.PolicySnap)

	s.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdProfileChange, Profile: engine.ProfileWide}}

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)
	assert.Equal(t, 0, view.Version)
}

func TestSession_CommandsApplyInOrder(t *testing.T) {
	s := newTestSession(t, engine.PolicySnap)

	for i := 0; i < 8; i++ {
		s.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdNextRotation}}
	}
	s.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdPrevRotation}}

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	assert.Equal(t, 9, view.Version)
	assert.Equal(t, 1, view.Board.Rotation)
}

func TestSession_DropSlowClient(t *testing.T) {
	s := newTestSession(t, engine.PolicySnap)

	clientOut := make(chan Snapshot, 1)
	s.Inbox() <- Join{ClientID: "c1", Outbox: clientOut}

	s.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdNextRotation}}

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	if view.NumClients != 0 {
		t.Fatalf("expected slow client to be dropped; NumClients=%d", view.NumClients)
	}
}

func TestSession_ShutdownClosesOutboxes(t *testing.T) {
	s := newTestSession(t, engine.PolicySnap)

	out := make(chan Snapshot, 2)
	s.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	s.Inbox() <- Shutdown{}

	select {
	case _, ok := <-out:
		assert.False(t, ok, "outbox should be closed")
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("outbox not closed after shutdown")
	}
	select {
	case <-s.Done():
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("session context not cancelled")
	}
}

func TestSession_LeaveClosesOutbox(t *testing.T) {
	s := newTestSession(t, engine.PolicySnap)

	out := make(chan Snapshot, 2)
	s.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	s.Inbox() <- Leave{ClientID: "c1"}

	select {
	case _, ok := <-out:
		assert.False(t, ok, "outbox should be closed on leave")
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("outbox not closed after leave")
	}

	// a second leave for the same client must not close twice
	s.Inbox() <- Leave{ClientID: "c1"}
	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	assert.Equal(t, 0, recvView(t, reply, 100*time.Millisecond).NumClients)
}

func TestSession_JoinWithFullOutboxDoesNotStall(t *testing.T) {
	s := newTestSession(t, engine.PolicySnap)

	unbuffered := make(chan Snapshot)
	s.Inbox() <- Join{ClientID: "c1", Outbox: unbuffered}

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)
	assert.Equal(t, 0, view.NumClients)

	_, ok := <-unbuffered
	assert.False(t, ok, "refused outbox should be closed")
}
