package errutil

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
)

var (
	// IDs
	SessionIDKey  = goerr.NewTypedKey[types.SessionID]("session_id")
	ArtifactIDKey = goerr.NewTypedKey[types.ArtifactID]("artifact_id")
	TemplateKey   = goerr.NewTypedKey[types.TemplateKey]("template")
	RequestIDKey  = goerr.NewTypedKey[string]("request_id")

	// Values
	RepositoryKey = goerr.NewTypedKey[string]("repository")
	StateKey      = goerr.NewTypedKey[types.SessionState]("state")
	OperationKey  = goerr.NewTypedKey[string]("operation")
	CountKey      = goerr.NewTypedKey[int]("count")
	DurationKey   = goerr.NewTypedKey[time.Duration]("duration")

	// External services
	ServiceKey    = goerr.NewTypedKey[string]("service")
	EndpointKey   = goerr.NewTypedKey[string]("endpoint")
	HTTPStatusKey = goerr.NewTypedKey[int]("http_status")
	URLKey        = goerr.NewTypedKey[string]("url")
)
