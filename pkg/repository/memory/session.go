package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/session"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"github.com/slidekit-lab/slidekit/pkg/utils/errutil"
)

func (r *Memory) lookup(id types.SessionID) (*entry, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, r.eb.Wrap(errs.ErrSessionNotFound, "session not found",
			goerr.TV(errutil.SessionIDKey, id))
	}
	return e, nil
}

// PutSession stores a deep copy of sess, creating or replacing the entry
func (r *Memory) PutSession(ctx context.Context, sess *session.Session) error {
	if err := sess.ID.Validate(); err != nil {
		return r.eb.Wrap(err, "invalid session ID")
	}

	copied := sess.Clone()

	r.mu.Lock()
	e, ok := r.entries[sess.ID]
	if !ok {
		r.entries[sess.ID] = &entry{sess: copied}
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		// Removed while we waited; re-insert under the map lock
		r.mu.Lock()
		r.entries[sess.ID] = &entry{sess: copied}
		r.mu.Unlock()
		return nil
	}
	e.sess = copied
	return nil
}

// GetSession returns a deep copy of the stored session
func (r *Memory) GetSession(ctx context.Context, id types.SessionID) (*session.Session, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return nil, r.eb.Wrap(errs.ErrSessionNotFound, "session not found",
			goerr.TV(errutil.SessionIDKey, id))
	}
	return e.sess.Clone(), nil
}

// MutateSession applies fn to a copy of the stored session under the entry
// lock and commits the copy only if fn succeeds. Concurrent mutations of the
// same session serialize; the second caller observes the first one's result.
// The returned session is a copy of the committed state.
func (r *Memory) MutateSession(ctx context.Context, id types.SessionID, fn func(sess *session.Session) error) (*session.Session, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return nil, r.eb.Wrap(errs.ErrSessionNotFound, "session removed during mutation",
			goerr.TV(errutil.SessionIDKey, id))
	}

	copied := e.sess.Clone()
	if err := fn(copied); err != nil {
		return nil, err
	}
	e.sess = copied
	return copied.Clone(), nil
}

// DeleteSession removes the session, failing if it does not exist
func (r *Memory) DeleteSession(ctx context.Context, id types.SessionID) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()
	if !ok {
		return r.eb.Wrap(errs.ErrSessionNotFound, "session not found",
			goerr.TV(errutil.SessionIDKey, id))
	}

	e.mu.Lock()
	e.sess = nil
	e.mu.Unlock()
	return nil
}

// SweepSessions removes sessions idle longer than idleTimeout and returns
// how many were removed. A session whose entry lock is held by an in-flight
// mutation is re-checked after that mutation commits, so activity during the
// sweep still counts.
func (r *Memory) SweepSessions(ctx context.Context, now time.Time, idleTimeout time.Duration) (int, error) {
	r.mu.RLock()
	candidates := make(map[types.SessionID]*entry, len(r.entries))
	for id, e := range r.entries {
		candidates[id] = e
	}
	r.mu.RUnlock()

	removed := 0
	for id, e := range candidates {
		e.mu.Lock()
		if e.sess == nil || !e.sess.Expired(now, idleTimeout) {
			e.mu.Unlock()
			continue
		}
		e.sess = nil
		e.mu.Unlock()

		// A concurrent PutSession may have replaced the swept entry with
		// a fresh one; only remove the map key if it still points at ours.
		r.mu.Lock()
		if cur, ok := r.entries[id]; ok && cur == e {
			delete(r.entries, id)
		}
		r.mu.Unlock()
		removed++
	}
	return removed, nil
}

// CountSessions returns the number of live sessions
func (r *Memory) CountSessions(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}
