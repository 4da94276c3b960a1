package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/session"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"github.com/slidekit-lab/slidekit/pkg/service/prompt"
	"github.com/slidekit-lab/slidekit/pkg/service/stream"
	"github.com/slidekit-lab/slidekit/pkg/utils/clock"
	"github.com/slidekit-lab/slidekit/pkg/utils/errutil"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
)

// getSession fetches the session and enforces idle expiry lazily: an expired
// session is removed and reported as not found even if the background sweeper
// has not caught it yet.
func (u *UseCases) getSession(ctx context.Context, id types.SessionID) (*session.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(errs.ErrSessionNotFound, "invalid session ID", goerr.V("id", id))
	}
	sess, err := u.repository.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Expired(clock.Now(ctx), u.idleTimeout) {
		if err := u.repository.DeleteSession(ctx, id); err != nil {
			logging.From(ctx).Warn("failed to remove expired session", "error", err, "session_id", id)
		}
		return nil, goerr.Wrap(errs.ErrSessionNotFound, "session expired",
			goerr.TV(errutil.SessionIDKey, id))
	}
	return sess, nil
}

// ChatReply is the outcome of one conversation exchange
type ChatReply struct {
	Text          string             `json:"text"`
	ReadyForDraft bool               `json:"ready_for_draft"`
	State         types.SessionState `json:"state"`
}

// StartChat creates a guided session for the template and seeds the history
// with the template's greeting as the first assistant turn.
func (u *UseCases) StartChat(ctx context.Context, templateKey types.TemplateKey) (*session.Session, error) {
	tmpl, err := u.registry.GetGuided(templateKey)
	if err != nil {
		return nil, err
	}

	sess := session.New(ctx, tmpl.Key)
	if greeting := tmpl.Guided.Greeting; greeting != "" {
		sess.Append(ctx, session.RoleAssistant, greeting)
	}

	if err := u.repository.PutSession(ctx, sess); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("started guided session",
		"session_id", sess.ID,
		"template", tmpl.Key)
	return sess, nil
}

// SendMessage runs one conversation exchange. The model reply streams through
// the marker filter; each cleaned fragment is passed to emit as it becomes
// available (emit may be nil for non-streaming callers).
//
// Session state is only mutated after the model call finishes, so a failed or
// interrupted call leaves the session retryable. If the stream is cut short
// by ctx, the user turn is still recorded but no partial assistant turn is.
func (u *UseCases) SendMessage(ctx context.Context, id types.SessionID, text string, emit func(fragment string) error) (*ChatReply, error) {
	if text == "" {
		return nil, goerr.New("message text is empty",
			goerr.T(errs.TagInvalidRequest),
			goerr.TV(errutil.SessionIDKey, id))
	}

	sess, err := u.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.AcceptsMessages() {
		return nil, goerr.Wrap(errs.ErrInvalidState, "session no longer accepts messages",
			goerr.TV(errutil.SessionIDKey, id),
			goerr.TV(errutil.StateKey, sess.State))
	}

	tmpl, err := u.registry.GetGuided(sess.Template)
	if err != nil {
		return nil, err
	}

	// Build the prompt from a local copy of the history plus the new user
	// turn. Nothing is persisted until the model call succeeds.
	sess.Append(ctx, session.RoleUser, text)
	systemPrompt := prompt.ConversationSystem(tmpl)
	transcript := prompt.Transcript(sess.History)

	ch, err := u.model.StreamComplete(ctx, systemPrompt, transcript)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to start model stream",
			goerr.TV(errutil.SessionIDKey, id))
	}

	filter := stream.NewMarkerFilter(u.marker)
	var emitErr error
	for fragment := range ch {
		out := filter.Feed(fragment)
		if out == "" || emit == nil || emitErr != nil {
			continue
		}
		if err := emit(out); err != nil {
			// Client is gone; drain the stream but stop forwarding
			emitErr = err
		}
	}
	if tail := filter.Flush(); tail != "" && emit != nil && emitErr == nil {
		emitErr = emit(tail)
	}

	interrupted := ctx.Err() != nil

	// Persist under the session lock, re-checking state: a concurrent
	// request may have won the race while the model was generating.
	updated, err := u.repository.MutateSession(ctx, id, func(s *session.Session) error {
		if !s.AcceptsMessages() {
			return goerr.Wrap(errs.ErrInvalidState, "session state changed during generation",
				goerr.TV(errutil.SessionIDKey, id),
				goerr.TV(errutil.StateKey, s.State))
		}
		s.Append(ctx, session.RoleUser, text)
		if !interrupted {
			s.Append(ctx, session.RoleAssistant, filter.Text())
			if filter.Seen() {
				s.MarkReady()
			}
		}
		s.Trim(u.historyCap)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if interrupted {
		return nil, goerr.Wrap(ctx.Err(), "model stream interrupted",
			goerr.T(errs.TagTimeout),
			goerr.TV(errutil.SessionIDKey, id))
	}

	logging.From(ctx).Info("conversation exchange completed",
		"session_id", id,
		"ready_for_draft", filter.Seen(),
		"state", updated.State,
		"turns", len(updated.History))

	return &ChatReply{
		Text:          filter.Text(),
		ReadyForDraft: filter.Seen(),
		State:         updated.State,
	}, nil
}

// GetChat returns the session without extending its idle deadline
func (u *UseCases) GetChat(ctx context.Context, id types.SessionID) (*session.Session, error) {
	return u.getSession(ctx, id)
}

// DeleteChat removes the session
func (u *UseCases) DeleteChat(ctx context.Context, id types.SessionID) error {
	if err := id.Validate(); err != nil {
		return goerr.Wrap(errs.ErrSessionNotFound, "invalid session ID", goerr.V("id", id))
	}
	if err := u.repository.DeleteSession(ctx, id); err != nil {
		return err
	}
	logging.From(ctx).Info("deleted session", "session_id", id)
	return nil
}
