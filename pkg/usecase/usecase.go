package usecase

import (
	"time"

	"github.com/slidekit-lab/slidekit/pkg/domain/interfaces"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/template"
	"github.com/slidekit-lab/slidekit/pkg/repository/memory"
	"github.com/slidekit-lab/slidekit/pkg/service/prompt"
	"github.com/slidekit-lab/slidekit/pkg/service/stream"
	storageService "github.com/slidekit-lab/slidekit/pkg/service/storage"
)

const (
	// DefaultIdleTimeout is how long a session may sit idle before the
	// sweeper removes it.
	DefaultIdleTimeout = 30 * time.Minute

	// DefaultHistoryCap bounds the conversation history per session; the
	// oldest turns are dropped beyond it.
	DefaultHistoryCap = 100
)

type UseCases struct {
	repository interfaces.Repository
	model      interfaces.ModelClient
	renderer   interfaces.Renderer
	artifacts  *storageService.Service
	registry   *template.Registry

	idleTimeout time.Duration
	historyCap  int
	marker      string
}

type Option func(*UseCases)

func WithRepository(repository interfaces.Repository) Option {
	return func(u *UseCases) {
		u.repository = repository
	}
}

func WithModelClient(model interfaces.ModelClient) Option {
	return func(u *UseCases) {
		u.model = model
	}
}

func WithRenderer(renderer interfaces.Renderer) Option {
	return func(u *UseCases) {
		u.renderer = renderer
	}
}

func WithArtifactService(artifacts *storageService.Service) Option {
	return func(u *UseCases) {
		u.artifacts = artifacts
	}
}

func WithRegistry(registry *template.Registry) Option {
	return func(u *UseCases) {
		u.registry = registry
	}
}

func WithIdleTimeout(d time.Duration) Option {
	return func(u *UseCases) {
		u.idleTimeout = d
	}
}

func WithHistoryCap(n int) Option {
	return func(u *UseCases) {
		u.historyCap = n
	}
}

func WithMarker(marker string) Option {
	return func(u *UseCases) {
		u.marker = marker
	}
}

func New(opts ...Option) *UseCases {
	u := &UseCases{
		repository:  memory.New(),
		idleTimeout: DefaultIdleTimeout,
		historyCap:  DefaultHistoryCap,
		marker:      stream.DefaultMarker,
	}

	for _, opt := range opts {
		opt(u)
	}

	if u.registry == nil {
		registry, err := prompt.LoadRegistry("")
		if err != nil {
			panic("embedded template registry is invalid: " + err.Error())
		}
		u.registry = registry
	}

	return u
}

// Templates lists the available presentation templates
func (u *UseCases) Templates() []*template.Template {
	return u.registry.List()
}

// Defaults returns the registry-wide default generation parameters
func (u *UseCases) Defaults() template.Defaults {
	return u.registry.Defaults()
}

// IdleTimeout returns the configured session idle timeout
func (u *UseCases) IdleTimeout() time.Duration {
	return u.idleTimeout
}
