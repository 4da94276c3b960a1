package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/slidekit-lab/slidekit/pkg/domain/mock"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/service/llm"
)

type greeting struct {
	Message string `json:"message"`
}

func TestAsk(t *testing.T) {
	ctx := context.Background()

	client := &mock.ModelClientMock{
		CompleteFunc: func(ctx context.Context, systemPrompt, prompt string) (string, error) {
			return `{"message": "hello"}`, nil
		},
	}

	result := gt.R1(llm.Ask[greeting](ctx, client, "system", "say hello")).NoError(t)
	gt.V(t, result.Message).Equal("hello")
	gt.A(t, client.CompleteCalls()).Length(1)
	gt.V(t, client.CompleteCalls()[0].SystemPrompt).Equal("system")
}

func TestAskFencedResponse(t *testing.T) {
	ctx := context.Background()

	client := &mock.ModelClientMock{
		CompleteFunc: func(ctx context.Context, systemPrompt, prompt string) (string, error) {
			return "Sure, here you go:\n```json\n{\"message\": \"fenced\"}\n```\nAnything else?", nil
		},
	}

	result := gt.R1(llm.Ask[greeting](ctx, client, "", "p")).NoError(t)
	gt.V(t, result.Message).Equal("fenced")
}

func TestAskRetriesOnMalformedResponse(t *testing.T) {
	ctx := context.Background()

	calls := 0
	client := &mock.ModelClientMock{
		CompleteFunc: func(ctx context.Context, systemPrompt, prompt string) (string, error) {
			calls++
			if calls == 1 {
				return "I think the answer is probably yes", nil
			}
			return `{"message": "second try"}`, nil
		},
	}

	result := gt.R1(llm.Ask[greeting](ctx, client, "", "p")).NoError(t)
	gt.V(t, result.Message).Equal("second try")
	gt.V(t, calls).Equal(2)
}

func TestAskExhaustsRetries(t *testing.T) {
	ctx := context.Background()

	client := &mock.ModelClientMock{
		CompleteFunc: func(ctx context.Context, systemPrompt, prompt string) (string, error) {
			return "not json at all", nil
		},
	}

	_, err := llm.Ask[greeting](ctx, client, "", "p", llm.WithMaxRetry[greeting](2))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, errs.ErrMalformedDraft))
	gt.A(t, client.CompleteCalls()).Length(2)
}

func TestAskBackendFailureIsNotRetried(t *testing.T) {
	ctx := context.Background()

	client := &mock.ModelClientMock{
		CompleteFunc: func(ctx context.Context, systemPrompt, prompt string) (string, error) {
			return "", errors.New("connection refused")
		},
	}

	_, err := llm.Ask[greeting](ctx, client, "", "p")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, errs.ErrBackendUnavailable))
	gt.A(t, client.CompleteCalls()).Length(1)
}

func TestAskValidate(t *testing.T) {
	ctx := context.Background()

	calls := 0
	client := &mock.ModelClientMock{
		CompleteFunc: func(ctx context.Context, systemPrompt, prompt string) (string, error) {
			calls++
			if calls == 1 {
				return `{"message": ""}`, nil
			}
			return `{"message": "valid"}`, nil
		},
	}

	result := gt.R1(llm.Ask[greeting](ctx, client, "", "p",
		llm.WithValidate[greeting](func(v greeting) error {
			if v.Message == "" {
				return errors.New("empty message")
			}
			return nil
		}))).NoError(t)
	gt.V(t, result.Message).Equal("valid")
	gt.V(t, calls).Equal(2)
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]struct {
		input string
		want  string
		isErr bool
	}{
		"bare object":        {input: `{"a":1}`, want: `{"a":1}`},
		"surrounding prose":  {input: `Here is the outline: {"a":1} hope it helps`, want: `{"a":1}`},
		"json fence":         {input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		"anonymous fence":    {input: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		"unterminated fence": {input: "```json\n{\"a\":1}", want: `{"a":1}`},
		"nested braces":      {input: `x {"a":{"b":2}} y`, want: `{"a":{"b":2}}`},
		"no object":          {input: "nothing here", isErr: true},
		"empty":              {input: "", isErr: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := llm.ExtractJSON(tc.input)
			if tc.isErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.V(t, got).Equal(tc.want)
		})
	}
}
