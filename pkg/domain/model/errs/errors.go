package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrSessionNotFound is returned when a session ID does not resolve to a
	// live session, either because it never existed or it expired.
	ErrSessionNotFound = goerr.New("session not found or expired", goerr.T(TagNotFound))

	// ErrTemplateNotFound is returned for an unknown template key.
	ErrTemplateNotFound = goerr.New("template not found", goerr.T(TagNotFound))

	// ErrGuidedModeNotSupported is returned when a template has no guided
	// conversation configuration.
	ErrGuidedModeNotSupported = goerr.New("template does not support guided mode", goerr.T(TagValidation))

	// ErrInvalidState is returned for an operation that is illegal in the
	// session's current state. The session is left unmodified.
	ErrInvalidState = goerr.New("operation not allowed in current session state", goerr.T(TagInvalidState))

	// ErrDraftNotReady is returned when a draft is requested before the model
	// has signaled readiness.
	ErrDraftNotReady = goerr.New("conversation has not gathered enough information for a draft", goerr.T(TagInvalidState))

	// ErrNoDraft is returned when final generation is requested before a draft
	// exists.
	ErrNoDraft = goerr.New("no draft available, create a draft first", goerr.T(TagInvalidState))

	// ErrMalformedDraft is returned when the model output could not be parsed
	// into an outline. The raw output is logged, never surfaced to the caller.
	ErrMalformedDraft = goerr.New("failed to parse draft outline from model output", goerr.T(TagInvalidLLMResponse))

	// ErrBackendUnavailable is returned when the model backend is unreachable
	// or timed out. Safe to retry: failed calls never mutate session state.
	ErrBackendUnavailable = goerr.New("model backend is unavailable", goerr.T(TagExternal))

	// ErrRenderFailed is returned when the rendering collaborator fails.
	ErrRenderFailed = goerr.New("failed to render presentation", goerr.T(TagExternal))

	// ErrArtifactNotFound is returned when a download references an unknown
	// artifact ID.
	ErrArtifactNotFound = goerr.New("artifact not found", goerr.T(TagNotFound))
)
