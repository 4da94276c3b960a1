package interfaces

import (
	"context"
	"time"

	"github.com/slidekit-lab/slidekit/pkg/domain/model/session"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
)

// Repository stores guided conversation sessions. Get returns a deep copy;
// mutation happens only through Mutate, which holds a per-session lock so
// concurrent writers for the same ID serialize while other sessions proceed.
type Repository interface {
	PutSession(ctx context.Context, sess *session.Session) error
	GetSession(ctx context.Context, id types.SessionID) (*session.Session, error)
	MutateSession(ctx context.Context, id types.SessionID, fn func(sess *session.Session) error) (*session.Session, error)
	DeleteSession(ctx context.Context, id types.SessionID) error
	SweepSessions(ctx context.Context, now time.Time, idleTimeout time.Duration) (int, error)
	CountSessions(ctx context.Context) (int, error)
}
