package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/session"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	llmService "github.com/slidekit-lab/slidekit/pkg/service/llm"
	"github.com/slidekit-lab/slidekit/pkg/service/prompt"
	"github.com/slidekit-lab/slidekit/pkg/utils/errutil"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
)

// CreateDraft asks the model to distill the conversation into an outline and
// stores it on the session. Requires the readiness marker to have fired;
// calling again on a drafted session regenerates and overwrites the draft.
func (u *UseCases) CreateDraft(ctx context.Context, id types.SessionID) (*deck.Outline, error) {
	sess, err := u.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	// Fail fast before the model call; the authoritative check happens
	// again inside the mutation.
	switch sess.State {
	case types.SessionStateCollecting:
		return nil, goerr.Wrap(errs.ErrDraftNotReady, "conversation is still collecting information",
			goerr.TV(errutil.SessionIDKey, id),
			goerr.TV(errutil.StateKey, sess.State))
	case types.SessionStateCompleted:
		return nil, goerr.Wrap(errs.ErrInvalidState, "session is already completed",
			goerr.TV(errutil.SessionIDKey, id),
			goerr.TV(errutil.StateKey, sess.State))
	}

	tmpl, err := u.registry.GetGuided(sess.Template)
	if err != nil {
		return nil, err
	}

	outline, err := llmService.Ask[deck.Outline](ctx, u.model,
		prompt.DraftSystem(tmpl),
		prompt.Draft(tmpl, sess.History),
		llmService.WithValidate[deck.Outline](func(o deck.Outline) error {
			return o.Validate()
		}))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create draft outline",
			goerr.TV(errutil.SessionIDKey, id))
	}

	updated, err := u.repository.MutateSession(ctx, id, func(s *session.Session) error {
		return s.SetDraft(ctx, outline)
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("created draft outline",
		"session_id", id,
		"title", outline.Title,
		"slides", len(outline.Slides))
	return updated.Draft, nil
}

// GetDraft returns the stored draft outline, or ErrNoDraft
func (u *UseCases) GetDraft(ctx context.Context, id types.SessionID) (*deck.Outline, error) {
	sess, err := u.GetChat(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Draft == nil {
		return nil, goerr.Wrap(errs.ErrNoDraft, "session has no draft",
			goerr.TV(errutil.SessionIDKey, id),
			goerr.TV(errutil.StateKey, sess.State))
	}
	return sess.Draft, nil
}
