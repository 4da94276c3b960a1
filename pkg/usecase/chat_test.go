package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	adapterStorage "github.com/slidekit-lab/slidekit/pkg/adapter/storage"
	"github.com/slidekit-lab/slidekit/pkg/domain/mock"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/session"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"github.com/slidekit-lab/slidekit/pkg/service/storage"
	"github.com/slidekit-lab/slidekit/pkg/usecase"
	"github.com/slidekit-lab/slidekit/pkg/utils/clock"
)

// streamOf returns a StreamCompleteFunc that replays the given fragments
func streamOf(fragments ...string) func(ctx context.Context, systemPrompt, prompt string) (<-chan string, error) {
	return func(ctx context.Context, systemPrompt, prompt string) (<-chan string, error) {
		ch := make(chan string)
		go func() {
			defer close(ch)
			for _, f := range fragments {
				select {
				case ch <- f:
				case <-ctx.Done():
					return
				}
			}
		}()
		return ch, nil
	}
}

func newTestUseCases(model *mock.ModelClientMock, renderer *mock.RendererMock, opts ...usecase.Option) *usecase.UseCases {
	base := []usecase.Option{
		usecase.WithModelClient(model),
		usecase.WithRenderer(renderer),
		usecase.WithArtifactService(storage.New(adapterStorage.NewMemoryClient())),
	}
	return usecase.New(append(base, opts...)...)
}

func TestStartChat(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(&mock.ModelClientMock{}, &mock.RendererMock{})

	sess := gt.R1(uc.StartChat(ctx, "general")).NoError(t)
	gt.V(t, sess.State).Equal(types.SessionStateCollecting)

	// Greeting is the first assistant turn
	gt.A(t, sess.History).Length(1)
	gt.V(t, sess.History[0].Role).Equal(session.RoleAssistant)
	gt.S(t, sess.History[0].Content).Contains("presentation")

	stored := gt.R1(uc.GetChat(ctx, sess.ID)).NoError(t)
	gt.V(t, stored.ID).Equal(sess.ID)
}

func TestStartChatGuidedOnly(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(&mock.ModelClientMock{}, &mock.RendererMock{})

	// status_report has no guided mode configuration
	_, err := uc.StartChat(ctx, "status_report")
	gt.True(t, errors.Is(err, errs.ErrGuidedModeNotSupported))

	_, err = uc.StartChat(ctx, "no_such_template")
	gt.True(t, errors.Is(err, errs.ErrTemplateNotFound))
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	model := &mock.ModelClientMock{
		StreamCompleteFunc: streamOf("What audience ", "are you ", "presenting to?"),
	}
	uc := newTestUseCases(model, &mock.RendererMock{})

	sess := gt.R1(uc.StartChat(ctx, "general")).NoError(t)

	var emitted []string
	reply := gt.R1(uc.SendMessage(ctx, sess.ID, "A deck about bees", func(fragment string) error {
		emitted = append(emitted, fragment)
		return nil
	})).NoError(t)

	gt.V(t, reply.Text).Equal("What audience are you presenting to?")
	gt.False(t, reply.ReadyForDraft)
	gt.V(t, reply.State).Equal(types.SessionStateCollecting)
	gt.V(t, strings.Join(emitted, "")).Equal(reply.Text)

	// History gained the user turn and the assistant turn
	stored := gt.R1(uc.GetChat(ctx, sess.ID)).NoError(t)
	gt.A(t, stored.History).Length(3)
	gt.V(t, stored.History[1].Role).Equal(session.RoleUser)
	gt.V(t, stored.History[1].Content).Equal("A deck about bees")
	gt.V(t, stored.History[2].Role).Equal(session.RoleAssistant)
	gt.V(t, stored.History[2].Content).Equal(reply.Text)

	// The model saw the full transcript including the new user turn
	gt.A(t, model.StreamCompleteCalls()).Length(1)
	gt.S(t, model.StreamCompleteCalls()[0].Prompt).Contains("A deck about bees")
}

func TestSendMessageMarkerDetected(t *testing.T) {
	ctx := context.Background()
	model := &mock.ModelClientMock{
		// Marker split across fragment boundaries
		StreamCompleteFunc: streamOf("Perfect, I have everything. [READY", "_FOR_", "DRAFT] Shall we draft?"),
	}
	uc := newTestUseCases(model, &mock.RendererMock{})

	sess := gt.R1(uc.StartChat(ctx, "general")).NoError(t)

	var emitted strings.Builder
	reply := gt.R1(uc.SendMessage(ctx, sess.ID, "That's all", func(fragment string) error {
		emitted.WriteString(fragment)
		return nil
	})).NoError(t)

	gt.True(t, reply.ReadyForDraft)
	gt.V(t, reply.State).Equal(types.SessionStateReady)
	gt.V(t, reply.Text).Equal("Perfect, I have everything.  Shall we draft?")
	gt.False(t, strings.Contains(emitted.String(), "READY_FOR_DRAFT"))

	// The stored assistant turn is marker-free as well
	stored := gt.R1(uc.GetChat(ctx, sess.ID)).NoError(t)
	last := stored.History[len(stored.History)-1]
	gt.False(t, strings.Contains(last.Content, "READY_FOR_DRAFT"))
}

func TestSendMessageStillAcceptsAfterReady(t *testing.T) {
	ctx := context.Background()
	model := &mock.ModelClientMock{
		StreamCompleteFunc: streamOf("Noted. [READY_FOR_DRAFT]"),
	}
	uc := newTestUseCases(model, &mock.RendererMock{})

	sess := gt.R1(uc.StartChat(ctx, "general")).NoError(t)
	reply := gt.R1(uc.SendMessage(ctx, sess.ID, "info", nil)).NoError(t)
	gt.V(t, reply.State).Equal(types.SessionStateReady)

	// Ready sessions keep accepting refinements; state does not revert
	model.StreamCompleteFunc = streamOf("Updated the plan.")
	reply = gt.R1(uc.SendMessage(ctx, sess.ID, "one more thing", nil)).NoError(t)
	gt.V(t, reply.State).Equal(types.SessionStateReady)
	gt.False(t, reply.ReadyForDraft)
}

func TestSendMessageBackendFailureLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	model := &mock.ModelClientMock{
		StreamCompleteFunc: func(ctx context.Context, systemPrompt, prompt string) (<-chan string, error) {
			return nil, errors.New("connection refused")
		},
	}
	uc := newTestUseCases(model, &mock.RendererMock{})

	sess := gt.R1(uc.StartChat(ctx, "general")).NoError(t)
	_, err := uc.SendMessage(ctx, sess.ID, "hello", nil)
	gt.Error(t, err)

	// Retry-safe: nothing was appended
	stored := gt.R1(uc.GetChat(ctx, sess.ID)).NoError(t)
	gt.A(t, stored.History).Length(1)
	gt.V(t, stored.State).Equal(types.SessionStateCollecting)
}

func TestSendMessageValidation(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(&mock.ModelClientMock{}, &mock.RendererMock{})

	t.Run("unknown session", func(t *testing.T) {
		_, err := uc.SendMessage(ctx, types.NewSessionID(), "hi", nil)
		gt.True(t, errors.Is(err, errs.ErrSessionNotFound))
	})

	t.Run("malformed session ID", func(t *testing.T) {
		_, err := uc.SendMessage(ctx, "not-a-uuid", "hi", nil)
		gt.True(t, errors.Is(err, errs.ErrSessionNotFound))
	})

	t.Run("empty message", func(t *testing.T) {
		sess := gt.R1(uc.StartChat(ctx, "general")).NoError(t)
		_, err := uc.SendMessage(ctx, sess.ID, "", nil)
		gt.Error(t, err)
	})
}

func TestSendMessageRejectedAfterCompletion(t *testing.T) {
	ctx := context.Background()
	model := &mock.ModelClientMock{
		StreamCompleteFunc: streamOf("[READY_FOR_DRAFT]"),
		CompleteFunc: func(ctx context.Context, systemPrompt, prompt string) (string, error) {
			return `{"title":"Bees","slides":[
				{"type":"title","heading":"Bees"},
				{"type":"summary","heading":"Wrap up","bullets":["done"]}]}`, nil
		},
	}
	renderer := &mock.RendererMock{
		RenderFunc: func(ctx context.Context, outline *deck.Outline, template types.TemplateKey) (*deck.RenderResult, error) {
			return &deck.RenderResult{Filename: "bees.pptx", ContentType: "application/octet-stream", Data: []byte("x")}, nil
		},
	}
	uc := newTestUseCases(model, renderer)

	sess := gt.R1(uc.StartChat(ctx, "general")).NoError(t)
	gt.R1(uc.SendMessage(ctx, sess.ID, "everything", nil)).NoError(t)
	gt.R1(uc.CreateDraft(ctx, sess.ID)).NoError(t)
	gt.R1(uc.GenerateFromSession(ctx, sess.ID)).NoError(t)

	_, err := uc.SendMessage(ctx, sess.ID, "one more", nil)
	gt.True(t, errors.Is(err, errs.ErrInvalidState))
}

func TestDeleteChat(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(&mock.ModelClientMock{}, &mock.RendererMock{})

	sess := gt.R1(uc.StartChat(ctx, "general")).NoError(t)
	gt.NoError(t, uc.DeleteChat(ctx, sess.ID))

	_, err := uc.GetChat(ctx, sess.ID)
	gt.True(t, errors.Is(err, errs.ErrSessionNotFound))

	err = uc.DeleteChat(ctx, sess.ID)
	gt.True(t, errors.Is(err, errs.ErrSessionNotFound))
}

func TestSendMessageHistoryCap(t *testing.T) {
	ctx := context.Background()
	model := &mock.ModelClientMock{
		StreamCompleteFunc: streamOf("reply"),
	}
	uc := newTestUseCases(model, &mock.RendererMock{}, usecase.WithHistoryCap(4))

	sess := gt.R1(uc.StartChat(ctx, "general")).NoError(t)
	for i := 0; i < 5; i++ {
		gt.R1(uc.SendMessage(ctx, sess.ID, "message", nil)).NoError(t)
	}

	stored := gt.R1(uc.GetChat(ctx, sess.ID)).NoError(t)
	gt.A(t, stored.History).Length(4)
	// Newest turn survives trimming
	gt.V(t, stored.History[3].Content).Equal("reply")
}

func TestGetChatExpiredSession(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := clock.With(context.Background(), func() time.Time { return base })
	uc := newTestUseCases(&mock.ModelClientMock{}, &mock.RendererMock{},
		usecase.WithIdleTimeout(30*time.Minute))

	sess := gt.R1(uc.StartChat(ctx, "general")).NoError(t)

	// Still reachable just inside the idle window
	later := clock.With(context.Background(), func() time.Time { return base.Add(29 * time.Minute) })
	gt.R1(uc.GetChat(later, sess.ID)).NoError(t)

	// Past the window the session reads as not found and is removed,
	// even though no sweep has run
	expired := clock.With(context.Background(), func() time.Time { return base.Add(31 * time.Minute) })
	_, err := uc.GetChat(expired, sess.ID)
	gt.True(t, errors.Is(err, errs.ErrSessionNotFound))

	_, err = uc.SendMessage(expired, sess.ID, "hello?", nil)
	gt.True(t, errors.Is(err, errs.ErrSessionNotFound))
}
