package sessionoverride

import (
	"context"
	"errors"
)

// ErrNoActiveSession is returned by Get, Update and Reset when sessionKey
// is empty (spec.md §4.9, "Failure semantics"). A missing storage dir is
// refused earlier, by NewFileStore, with its own error.
var ErrNoActiveSession = errors.New("sessionoverride: no active session")

// Store is the Session Override Store contract (spec.md §4.9, SPEC_FULL.md
// §4.9). Update is the sole mutation primitive; Reset is implemented in
// terms of Update.
type Store interface {
	// Get returns the current record for sessionKey, or an empty Record
	// if none has ever been written.
	Get(ctx context.Context, sessionKey string) (Record, error)

	// Update loads the current record (or an empty one), applies mutate,
	// and persists the result atomically before returning. Concurrent
	// updates on the same sessionKey serialize; different keys proceed
	// independently (spec.md §5).
	Update(ctx context.Context, sessionKey string, mutate func(*Record)) (Record, error)

	// Reset clears all four override fields and reports whether any were
	// previously set.
	Reset(ctx context.Context, sessionKey string) (hadOverrides bool, err error)
}

// reset is the shared Reset implementation every backend delegates to: it
// is an Update whose mutator just clears the record (spec.md §4.9).
func reset(ctx context.Context, s Store, sessionKey string) (bool, error) {
	var hadOverrides bool
	_, err := s.Update(ctx, sessionKey, func(r *Record) {
		hadOverrides = !r.IsEmpty()
		r.clear()
	})
	if err != nil {
		return false, err
	}
	return hadOverrides, nil
}
