// Package resetcmd implements the Reset Command Handler (spec.md §4.10):
// the "/tools:reset" chat command that clears a session's tool overrides.
package resetcmd

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/nextlevelbuilder/toolgate/internal/chatbus"
	"github.com/nextlevelbuilder/toolgate/internal/sessionoverride"
)

const commandBody = "/tools:reset"

const (
	replyCleared           = "Tool overrides cleared. Tools restored to config baseline."
	replyNoneActive        = "No tool overrides were active."
	replyNoActiveSession   = "Cannot reset tool overrides: no active session."
	replyPersistenceFailed = "Could not reset tool overrides: a storage error occurred. Try again."
)

// Handler implements the Reset Command Handler. One Handler instance is
// shared across senders; per-sender throttling is internal.
type Handler struct {
	store    sessionoverride.Store
	ownerIDs map[string]bool
	limiters *senderLimiters
}

// NewHandler builds a Handler authorizing only the given owner ids
// (config.GatewayConfig.OwnerIDs), throttling each sender to ratePerMinute
// resets per minute via a token bucket (golang.org/x/time/rate), mirroring
// the teacher's per-sender rate limiting intent for chat commands.
func NewHandler(store sessionoverride.Store, ownerIDs []string, ratePerMinute int) *Handler {
	owners := make(map[string]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}
	if ratePerMinute <= 0 {
		ratePerMinute = 20
	}
	return &Handler{
		store:    store,
		ownerIDs: owners,
		limiters: newSenderLimiters(rate.Limit(float64(ratePerMinute)/60.0), ratePerMinute),
	}
}

// Handle inspects msg and, if it matches the reset command trigger,
// performs the reset and returns the reply. Messages that don't match the
// trigger pass through untouched (spec.md §4.10's "dispatcher is told not
// to fall through" only applies once the trigger is recognized).
func (h *Handler) Handle(ctx context.Context, msg chatbus.InboundMessage) chatbus.HandlerResult {
	if strings.TrimSpace(msg.Content) != commandBody {
		return chatbus.HandlerResult{}
	}

	// Unauthorized senders are silently ignored: no reply, no mutation
	// (spec.md §4.10, §7 "Unauthorized actor").
	if !h.ownerIDs[msg.SenderID] {
		return chatbus.HandlerResult{StopDispatch: true}
	}

	if !h.limiters.allow(msg.SenderID) {
		return chatbus.HandlerResult{StopDispatch: true}
	}

	if msg.SessionKey == "" {
		return chatbus.HandlerResult{
			Reply:        &chatbus.OutboundMessage{ChatID: msg.ChatID, Content: replyNoActiveSession},
			StopDispatch: true,
		}
	}

	hadOverrides, err := h.store.Reset(ctx, msg.SessionKey)
	if err != nil {
		slog.Error("reset tool overrides: persistence failure", "session_key", msg.SessionKey, "err", err)
		return chatbus.HandlerResult{
			Reply:        &chatbus.OutboundMessage{ChatID: msg.ChatID, Content: replyPersistenceFailed},
			StopDispatch: true,
		}
	}

	reply := replyNoneActive
	if hadOverrides {
		reply = replyCleared
	}
	return chatbus.HandlerResult{
		Reply:        &chatbus.OutboundMessage{ChatID: msg.ChatID, Content: reply},
		StopDispatch: true,
	}
}

// senderLimiters stripes one rate.Limiter per sender id, created lazily.
type senderLimiters struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newSenderLimiters(limit rate.Limit, burst int) *senderLimiters {
	return &senderLimiters{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (s *senderLimiters) allow(sender string) bool {
	s.mu.Lock()
	l, ok := s.limiters[sender]
	if !ok {
		l = rate.NewLimiter(s.limit, s.burst)
		s.limiters[sender] = l
	}
	s.mu.Unlock()
	return l.AllowN(time.Now(), 1)
}
