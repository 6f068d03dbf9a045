package resetcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/nextlevelbuilder/toolgate/internal/chatbus"
	"github.com/nextlevelbuilder/toolgate/internal/sessionoverride"
)

// failingStore simulates a persistence-layer failure distinct from
// sessionoverride.ErrNoActiveSession, so Handle must not conflate the two.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, sessionKey string) (sessionoverride.Record, error) {
	return sessionoverride.Record{}, errors.New("database unavailable")
}

func (failingStore) Update(ctx context.Context, sessionKey string, mutate func(*sessionoverride.Record)) (sessionoverride.Record, error) {
	return sessionoverride.Record{}, errors.New("database unavailable")
}

func (failingStore) Reset(ctx context.Context, sessionKey string) (bool, error) {
	return false, errors.New("database unavailable")
}

func newTestHandler(t *testing.T) (*Handler, sessionoverride.Store) {
	t.Helper()
	store, err := sessionoverride.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewHandler(store, []string{"owner-1"}, 20), store
}

func TestHandler_IgnoresNonMatchingMessage(t *testing.T) {
	h, _ := newTestHandler(t)
	got := h.Handle(context.Background(), chatbus.InboundMessage{SenderID: "owner-1", Content: "hello"})
	if got.StopDispatch || got.Reply != nil {
		t.Errorf("got %+v, want pass-through", got)
	}
}

func TestHandler_UnauthorizedSenderSilentlyDropped(t *testing.T) {
	h, _ := newTestHandler(t)
	got := h.Handle(context.Background(), chatbus.InboundMessage{SenderID: "stranger", Content: commandBody, SessionKey: "s1"})
	if got.Reply != nil {
		t.Errorf("unauthorized sender should get no reply, got %+v", got.Reply)
	}
	if !got.StopDispatch {
		t.Error("should still stop dispatch once the command matched")
	}
}

func TestHandler_NoActiveSession(t *testing.T) {
	h, _ := newTestHandler(t)
	got := h.Handle(context.Background(), chatbus.InboundMessage{SenderID: "owner-1", Content: commandBody})
	if got.Reply == nil || got.Reply.Content != replyNoActiveSession {
		t.Errorf("got %+v, want %q", got.Reply, replyNoActiveSession)
	}
}

func TestHandler_ClearedThenNoneActive(t *testing.T) {
	h, store := newTestHandler(t)
	ctx := context.Background()

	if _, err := store.Update(ctx, "sess-1", func(r *sessionoverride.Record) {
		allow := []string{"read"}
		r.AllowOverride = allow
	}); err != nil {
		t.Fatal(err)
	}

	got := h.Handle(ctx, chatbus.InboundMessage{SenderID: "owner-1", Content: commandBody, SessionKey: "sess-1"})
	if got.Reply == nil || got.Reply.Content != replyCleared {
		t.Errorf("first reset: got %+v, want %q", got.Reply, replyCleared)
	}

	got = h.Handle(ctx, chatbus.InboundMessage{SenderID: "owner-1", Content: commandBody, SessionKey: "sess-1"})
	if got.Reply == nil || got.Reply.Content != replyNoneActive {
		t.Errorf("second reset: got %+v, want %q", got.Reply, replyNoneActive)
	}
}

func TestHandler_NormalizesTrailingWhitespace(t *testing.T) {
	h, _ := newTestHandler(t)
	got := h.Handle(context.Background(), chatbus.InboundMessage{SenderID: "owner-1", Content: "  /tools:reset  ", SessionKey: "sess-1"})
	if got.Reply == nil {
		t.Fatal("expected the trigger to match after trimming whitespace")
	}
}

func TestHandler_PersistenceFailureGetsItsOwnReply(t *testing.T) {
	h := NewHandler(failingStore{}, []string{"owner-1"}, 20)
	got := h.Handle(context.Background(), chatbus.InboundMessage{SenderID: "owner-1", Content: commandBody, SessionKey: "sess-1"})
	if got.Reply == nil || got.Reply.Content != replyPersistenceFailed {
		t.Errorf("got %+v, want %q", got.Reply, replyPersistenceFailed)
	}
	if got.Reply.Content == replyNoActiveSession {
		t.Error("a storage error must not be reported as the no-active-session case")
	}
	if !got.StopDispatch {
		t.Error("should still stop dispatch")
	}
}

func TestHandler_RateLimited(t *testing.T) {
	store, err := sessionoverride.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := NewHandler(store, []string{"owner-1"}, 1)
	ctx := context.Background()

	first := h.Handle(ctx, chatbus.InboundMessage{SenderID: "owner-1", Content: commandBody, SessionKey: "sess-1"})
	if first.Reply == nil {
		t.Fatal("first request should succeed")
	}

	second := h.Handle(ctx, chatbus.InboundMessage{SenderID: "owner-1", Content: commandBody, SessionKey: "sess-1"})
	if second.Reply != nil {
		t.Errorf("immediate second request should be throttled, got reply %+v", second.Reply)
	}
	if !second.StopDispatch {
		t.Error("throttled request should still stop dispatch")
	}
}
