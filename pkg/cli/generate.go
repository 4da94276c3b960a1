package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	llmAdapter "github.com/slidekit-lab/slidekit/pkg/adapter/llm"
	"github.com/slidekit-lab/slidekit/pkg/adapter/storage"
	"github.com/slidekit-lab/slidekit/pkg/cli/config"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	storageService "github.com/slidekit-lab/slidekit/pkg/service/storage"
	"github.com/slidekit-lab/slidekit/pkg/usecase"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
	"github.com/slidekit-lab/slidekit/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdGenerate() *cli.Command {
	var (
		topic        string
		templateKey  string
		language     string
		slides       int
		output       string
		llmCfg       config.LLMCfg
		rendererCfg  config.Renderer
		templatesCfg config.Templates
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "topic",
				Aliases:     []string{"t"},
				Usage:       "Presentation topic",
				Required:    true,
				Destination: &topic,
			},
			&cli.StringFlag{
				Name:        "template",
				Usage:       "Template key (registry default if not set)",
				Destination: &templateKey,
			},
			&cli.StringFlag{
				Name:        "language",
				Usage:       "Presentation language (registry default if not set)",
				Destination: &language,
			},
			&cli.IntFlag{
				Name:        "slides",
				Usage:       "Number of slides (registry default if not set)",
				Destination: &slides,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output file path (derived from the title if not set)",
				Destination: &output,
			},
		},
		llmCfg.Flags(),
		rendererCfg.Flags(),
		templatesCfg.Flags(),
	)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate a presentation from a topic without a chat session",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			registry, err := templatesCfg.Configure()
			if err != nil {
				return err
			}

			llmClient, err := llmCfg.Configure(ctx)
			if err != nil {
				return err
			}

			rendererClient, err := rendererCfg.Configure(ctx)
			if err != nil {
				return err
			}

			artifacts := storageService.New(storage.NewMemoryClient())

			uc := usecase.New(
				usecase.WithModelClient(llmAdapter.New(llmClient)),
				usecase.WithRenderer(rendererClient),
				usecase.WithArtifactService(artifacts),
				usecase.WithRegistry(registry),
			)

			artifact, outline, err := uc.GenerateFromTopic(ctx, &usecase.QuickRequest{
				Topic:    topic,
				Template: types.TemplateKey(templateKey),
				Language: language,
				Slides:   slides,
			})
			if err != nil {
				return err
			}

			if output == "" {
				output = artifact.Filename
			}

			_, reader, err := uc.OpenArtifact(ctx, artifact.ID)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, reader)

			f, err := os.Create(filepath.Clean(output))
			if err != nil {
				return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
			}
			defer safe.Close(ctx, f)
			safe.Copy(ctx, f, reader)

			logging.From(ctx).Info("generated presentation",
				"path", output,
				"title", outline.Title,
				"slides", len(outline.Slides),
				"size", humanize.Bytes(uint64(artifact.Size)),
			)
			return nil
		},
	}
}
