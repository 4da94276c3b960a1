package llm

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/slidekit-lab/slidekit/pkg/domain/interfaces"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
)

// Client adapts a gollem.LLMClient to the narrow ModelClient surface the
// services use. Every call opens a fresh session: conversation state lives in
// the session repository, not in the backend.
type Client struct {
	llm gollem.LLMClient
}

var _ interfaces.ModelClient = &Client{}

func New(llmClient gollem.LLMClient) *Client {
	return &Client{llm: llmClient}
}

func (x *Client) newSession(ctx context.Context, systemPrompt string) (gollem.Session, error) {
	var opts []gollem.SessionOption
	if systemPrompt != "" {
		opts = append(opts, gollem.WithSessionSystemPrompt(systemPrompt))
	}
	ssn, err := x.llm.NewSession(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create model session", goerr.T(errs.TagExternal))
	}
	return ssn, nil
}

func (x *Client) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	ssn, err := x.newSession(ctx, systemPrompt)
	if err != nil {
		return "", err
	}

	resp, err := ssn.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content", goerr.T(errs.TagExternal))
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("empty response from model", goerr.T(errs.TagInvalidLLMResponse))
	}
	return strings.Join(resp.Texts, ""), nil
}

func (x *Client) StreamComplete(ctx context.Context, systemPrompt, prompt string) (<-chan string, error) {
	ssn, err := x.newSession(ctx, systemPrompt)
	if err != nil {
		return nil, err
	}

	ch, err := ssn.GenerateStream(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to start stream", goerr.T(errs.TagExternal))
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for resp := range ch {
			for _, text := range resp.Texts {
				if text == "" {
					continue
				}
				select {
				case out <- text:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
