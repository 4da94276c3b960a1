package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/gollem"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
)

// ModelClient is the narrow surface this service needs from a model backend.
// Prompts carry the conversation history pre-rendered; the backend is
// stateless between calls.
type ModelClient interface {
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
	StreamComplete(ctx context.Context, systemPrompt, prompt string) (<-chan string, error)
}

// Renderer turns a validated outline into presentation file bytes
type Renderer interface {
	Render(ctx context.Context, outline *deck.Outline, template types.TemplateKey) (*deck.RenderResult, error)
}

type StorageClient interface {
	PutObject(ctx context.Context, object string) io.WriteCloser
	GetObject(ctx context.Context, object string) (io.ReadCloser, error)
	Close(ctx context.Context)
}

type LLMClient interface {
	gollem.LLMClient
}

type LLMSession interface {
	gollem.Session
}
