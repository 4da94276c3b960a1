package config

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/slidekit-lab/slidekit/pkg/adapter/renderer"
	"github.com/slidekit-lab/slidekit/pkg/domain/interfaces"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Renderer struct {
	url     string
	timeout time.Duration
}

func (x *Renderer) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "renderer-url",
			Usage:       "Base URL of the PPTX rendering service (built-in PDF renderer if not set)",
			Category:    "Renderer",
			Destination: &x.url,
			Sources:     cli.EnvVars("SLIDEKIT_RENDERER_URL"),
		},
		&cli.DurationFlag{
			Name:        "renderer-timeout",
			Usage:       "Timeout for rendering service requests",
			Category:    "Renderer",
			Value:       60 * time.Second,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("SLIDEKIT_RENDERER_TIMEOUT"),
		},
	}
}

func (x Renderer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", x.url),
		slog.Duration("timeout", x.timeout),
	)
}

// Configure returns the renderer backend. Without a URL it falls back to the
// built-in PDF renderer.
func (x *Renderer) Configure(ctx context.Context) (interfaces.Renderer, error) {
	if x.url == "" {
		logging.From(ctx).Warn("renderer URL is not set, using built-in PDF renderer")
		return renderer.NewPDFRenderer(), nil
	}

	return renderer.NewHTTPClient(x.url,
		renderer.WithHTTPClient(&http.Client{Timeout: x.timeout}),
	), nil
}
