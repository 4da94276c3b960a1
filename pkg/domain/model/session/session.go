package session

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"github.com/slidekit-lab/slidekit/pkg/utils/clock"
)

// Session represents one guided-mode conversation's full server-side state.
// All access goes through the session repository by ID; no component holds a
// session reference across calls.
type Session struct {
	ID           types.SessionID    `json:"id"`
	Template     types.TemplateKey  `json:"template"`
	State        types.SessionState `json:"state"`
	History      []Turn             `json:"history"`
	Draft        *deck.Outline      `json:"draft,omitempty"`
	ArtifactID   types.ArtifactID   `json:"artifact_id,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	LastActivity time.Time          `json:"last_activity"`
}

// New creates a session in the collecting state with empty history
func New(ctx context.Context, template types.TemplateKey) *Session {
	now := clock.Now(ctx)
	return &Session{
		ID:           types.NewSessionID(),
		Template:     template,
		State:        types.SessionStateCollecting,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// Append adds a turn to the history and updates the activity timestamp.
// History is append-only; Trim is the only other permitted modification.
func (x *Session) Append(ctx context.Context, role Role, content string) {
	x.History = append(x.History, NewTurn(ctx, role, content))
	x.LastActivity = clock.Now(ctx)
}

// Trim drops the oldest turns so that at most max remain. Ordering of the
// surviving turns is preserved.
func (x *Session) Trim(max int) {
	if max <= 0 || len(x.History) <= max {
		return
	}
	trimmed := make([]Turn, max)
	copy(trimmed, x.History[len(x.History)-max:])
	x.History = trimmed
}

// Touch updates the activity timestamp without any other change
func (x *Session) Touch(ctx context.Context) {
	x.LastActivity = clock.Now(ctx)
}

// Expired reports whether the session has been idle longer than idleTimeout
func (x *Session) Expired(now time.Time, idleTimeout time.Duration) bool {
	return now.Sub(x.LastActivity) > idleTimeout
}

// AcceptsMessages reports whether appendMessage is legal in the current state
func (x *Session) AcceptsMessages() bool {
	return x.State == types.SessionStateCollecting || x.State == types.SessionStateReady
}

// MarkReady flips collecting to ready. Re-triggering while already ready is a
// no-op; the state never reverts.
func (x *Session) MarkReady() {
	if x.State == types.SessionStateCollecting {
		x.State = types.SessionStateReady
	}
}

// SetDraft stores an outline and transitions to drafted. Legal from ready and
// from drafted (regenerating overwrites the stored draft without a state
// change). Returns ErrDraftNotReady while still collecting.
func (x *Session) SetDraft(ctx context.Context, outline *deck.Outline) error {
	switch x.State {
	case types.SessionStateCollecting:
		return goerr.Wrap(errs.ErrDraftNotReady, "session is still collecting",
			goerr.V("session_id", x.ID),
			goerr.V("state", x.State))
	case types.SessionStateCompleted:
		return goerr.Wrap(errs.ErrInvalidState, "session is already completed",
			goerr.V("session_id", x.ID),
			goerr.V("state", x.State))
	}

	x.Draft = outline.Clone()
	x.State = types.SessionStateDrafted
	x.LastActivity = clock.Now(ctx)
	return nil
}

// Complete records the rendered artifact and transitions to the terminal
// state. Returns ErrNoDraft unless a draft exists.
func (x *Session) Complete(ctx context.Context, artifactID types.ArtifactID) error {
	if x.State != types.SessionStateDrafted {
		return goerr.Wrap(errs.ErrNoDraft, "session has no draft",
			goerr.V("session_id", x.ID),
			goerr.V("state", x.State))
	}

	x.ArtifactID = artifactID
	x.State = types.SessionStateCompleted
	x.LastActivity = clock.Now(ctx)
	return nil
}

// Clone returns a deep copy so callers never share mutable state with the
// repository.
func (x *Session) Clone() *Session {
	if x == nil {
		return nil
	}
	copied := *x
	copied.History = make([]Turn, len(x.History))
	copy(copied.History, x.History)
	copied.Draft = x.Draft.Clone()
	return &copied
}
