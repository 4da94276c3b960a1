package usecase

import (
	"context"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/session"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	llmService "github.com/slidekit-lab/slidekit/pkg/service/llm"
	"github.com/slidekit-lab/slidekit/pkg/service/prompt"
	"github.com/slidekit-lab/slidekit/pkg/utils/clock"
	"github.com/slidekit-lab/slidekit/pkg/utils/errutil"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
)

// QuickRequest is a one-shot generation request that bypasses the guided
// conversation: topic in, rendered deck out.
type QuickRequest struct {
	Topic    string            `json:"topic"`
	Template types.TemplateKey `json:"template,omitempty"`
	Language string            `json:"language,omitempty"`
	Slides   int               `json:"slides,omitempty"`
}

func (x *QuickRequest) Validate() error {
	if x.Topic == "" {
		return goerr.New("topic is required", goerr.T(errs.TagInvalidRequest))
	}
	return nil
}

// GenerateFromSession renders the session's draft and completes the session.
// Requires a stored draft; the rendered artifact ID is recorded on the
// session for later download.
func (u *UseCases) GenerateFromSession(ctx context.Context, id types.SessionID) (*deck.Artifact, error) {
	sess, err := u.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	// Only a drafted session may generate: a completed one still carries
	// its draft, and re-rendering it would store an orphan artifact before
	// Complete rejects the transition.
	if sess.State != types.SessionStateDrafted || sess.Draft == nil {
		return nil, goerr.Wrap(errs.ErrNoDraft, "create a draft before generating",
			goerr.TV(errutil.SessionIDKey, id),
			goerr.TV(errutil.StateKey, sess.State))
	}

	result, err := u.renderer.Render(ctx, sess.Draft, sess.Template)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render session draft",
			goerr.TV(errutil.SessionIDKey, id))
	}

	artifact, err := u.artifacts.PutArtifact(ctx, result)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store artifact",
			goerr.TV(errutil.SessionIDKey, id))
	}

	if _, err := u.repository.MutateSession(ctx, id, func(s *session.Session) error {
		return s.Complete(ctx, artifact.ID)
	}); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("generated presentation from session",
		"session_id", id,
		"artifact_id", artifact.ID,
		"filename", artifact.Filename,
		"size", humanize.Bytes(uint64(artifact.Size)))
	return artifact, nil
}

// GenerateFromTopic is quick mode: outline and render in one call, no session
func (u *UseCases) GenerateFromTopic(ctx context.Context, req *QuickRequest) (*deck.Artifact, *deck.Outline, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	tmpl, err := u.registry.Get(req.Template)
	if err != nil {
		return nil, nil, err
	}

	defaults := u.registry.Defaults()
	language := req.Language
	if language == "" {
		language = defaults.Language
	}
	slides := req.Slides
	if slides <= 0 {
		slides = defaults.Slides
	}

	outline, err := llmService.Ask[deck.Outline](ctx, u.model,
		prompt.DraftSystem(tmpl),
		prompt.Quick(tmpl, req.Topic, language, slides),
		llmService.WithValidate[deck.Outline](func(o deck.Outline) error {
			return o.Validate()
		}))
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to generate outline",
			goerr.TV(errutil.TemplateKey, tmpl.Key))
	}

	result, err := u.renderer.Render(ctx, outline, tmpl.Key)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to render outline",
			goerr.TV(errutil.TemplateKey, tmpl.Key))
	}

	artifact, err := u.artifacts.PutArtifact(ctx, result)
	if err != nil {
		return nil, nil, err
	}

	logging.From(ctx).Info("generated presentation from topic",
		"template", tmpl.Key,
		"artifact_id", artifact.ID,
		"slides", len(outline.Slides),
		"size", humanize.Bytes(uint64(artifact.Size)))
	return artifact, outline, nil
}

// OpenArtifact returns the metadata and a reader for a stored artifact
func (u *UseCases) OpenArtifact(ctx context.Context, id types.ArtifactID) (*deck.Artifact, io.ReadCloser, error) {
	if err := id.Validate(); err != nil {
		return nil, nil, goerr.Wrap(errs.ErrArtifactNotFound, "invalid artifact ID", goerr.V("id", id))
	}

	artifact, err := u.artifacts.GetArtifact(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	r, err := u.artifacts.OpenArtifact(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return artifact, r, nil
}

// SweepSessions removes idle sessions once; RunSweeper calls it on a ticker
func (u *UseCases) SweepSessions(ctx context.Context) (int, error) {
	return u.repository.SweepSessions(ctx, clock.Now(ctx), u.idleTimeout)
}

// RunSweeper blocks, sweeping expired sessions every interval until ctx is
// canceled. Run it in its own goroutine.
func (u *UseCases) RunSweeper(ctx context.Context, interval time.Duration) {
	logger := logging.From(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := u.SweepSessions(ctx)
			if err != nil {
				logger.Error("session sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("swept expired sessions", "removed", removed)
			}
		}
	}
}
