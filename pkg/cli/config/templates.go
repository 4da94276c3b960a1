package config

import (
	"log/slog"

	"github.com/slidekit-lab/slidekit/pkg/domain/model/template"
	"github.com/slidekit-lab/slidekit/pkg/service/prompt"
	"github.com/urfave/cli/v3"
)

type Templates struct {
	path string
}

func (x *Templates) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "templates",
			Usage:       "Path to template definition YAML (built-in templates if not set)",
			Category:    "Templates",
			Destination: &x.path,
			Sources:     cli.EnvVars("SLIDEKIT_TEMPLATES"),
		},
	}
}

func (x Templates) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", x.path),
	)
}

func (x *Templates) Configure() (*template.Registry, error) {
	return prompt.LoadRegistry(x.path)
}
