package llm

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/interfaces"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
)

type askConfig[T any] struct {
	maxRetry    int
	retryPrompt func(ctx context.Context, err error) string
	validate    func(v T) error
}

type AskOption[T any] func(*askConfig[T])

func WithMaxRetry[T any](maxRetry int) AskOption[T] {
	return func(c *askConfig[T]) {
		c.maxRetry = maxRetry
	}
}

func WithRetryPrompt[T any](f func(ctx context.Context, err error) string) AskOption[T] {
	return func(c *askConfig[T]) {
		c.retryPrompt = f
	}
}

func WithValidate[T any](f func(v T) error) AskOption[T] {
	return func(c *askConfig[T]) {
		c.validate = f
	}
}

// Ask sends prompt to the model and decodes the reply as JSON into T. A
// malformed or invalid reply is retried with a corrective prompt; a backend
// failure is returned immediately as ErrBackendUnavailable.
func Ask[T any](ctx context.Context, client interfaces.ModelClient, systemPrompt, prompt string, opts ...AskOption[T]) (*T, error) {
	logger := logging.From(ctx)

	config := &askConfig[T]{
		maxRetry: 3,
		retryPrompt: func(ctx context.Context, err error) string {
			return "Invalid response. Reply with only the JSON object, no prose: " + err.Error()
		},
	}
	for _, opt := range opts {
		opt(config)
	}

	var response *T
	var lastErr error
	for i := 0; i < config.maxRetry && response == nil; i++ {
		text, err := client.Complete(ctx, systemPrompt, prompt)
		if err != nil {
			return nil, goerr.Wrap(errs.ErrBackendUnavailable, "model completion failed",
				goerr.V("cause", err.Error()))
		}

		raw, err := ExtractJSON(text)
		if err != nil {
			logger.Debug("no JSON object in model response", "error", err, "attempt", i+1)
			lastErr = err
			prompt = config.retryPrompt(ctx, err)
			continue
		}

		var result T
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			logger.Debug("failed to unmarshal model response", "text", truncate(raw, 256), "error", err)
			lastErr = err
			prompt = config.retryPrompt(ctx, err)
			continue
		}

		if config.validate != nil {
			if err := config.validate(result); err != nil {
				logger.Debug("model response failed validation", "error", err, "attempt", i+1)
				lastErr = err
				prompt = config.retryPrompt(ctx, err)
				continue
			}
		}

		response = &result
	}

	if response == nil {
		return nil, goerr.Wrap(errs.ErrMalformedDraft, "failed to get valid response from model",
			goerr.V("attempts", config.maxRetry),
			goerr.V("last_error", lastErr),
			goerr.T(errs.TagInvalidLLMResponse))
	}

	return response, nil
}
