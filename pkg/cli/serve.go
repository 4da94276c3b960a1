package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	llmAdapter "github.com/slidekit-lab/slidekit/pkg/adapter/llm"
	"github.com/slidekit-lab/slidekit/pkg/cli/config"
	server "github.com/slidekit-lab/slidekit/pkg/controller/http"
	storageService "github.com/slidekit-lab/slidekit/pkg/service/storage"
	"github.com/slidekit-lab/slidekit/pkg/usecase"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		addr          string
		idleTimeout   time.Duration
		sweepInterval time.Duration
		historyCap    int
		sentryCfg     config.Sentry
		llmCfg        config.LLMCfg
		storageCfg    config.Storage
		rendererCfg   config.Renderer
		templatesCfg  config.Templates
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("SLIDEKIT_ADDR"),
				Usage:       "Listen address (default: 127.0.0.1:8080)",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "session-idle-timeout",
				Usage:       "Expire chat sessions after this idle period",
				Category:    "Session",
				Sources:     cli.EnvVars("SLIDEKIT_SESSION_IDLE_TIMEOUT"),
				Value:       usecase.DefaultIdleTimeout,
				Destination: &idleTimeout,
			},
			&cli.DurationFlag{
				Name:        "session-sweep-interval",
				Usage:       "Interval between expired session sweeps",
				Category:    "Session",
				Sources:     cli.EnvVars("SLIDEKIT_SESSION_SWEEP_INTERVAL"),
				Value:       time.Minute,
				Destination: &sweepInterval,
			},
			&cli.IntFlag{
				Name:        "session-history-cap",
				Usage:       "Maximum conversation turns kept per session",
				Category:    "Session",
				Sources:     cli.EnvVars("SLIDEKIT_SESSION_HISTORY_CAP"),
				Value:       usecase.DefaultHistoryCap,
				Destination: &historyCap,
			},
		},
		sentryCfg.Flags(),
		llmCfg.Flags(),
		storageCfg.Flags(),
		rendererCfg.Flags(),
		templatesCfg.Flags(),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logging.Default().Info("starting server",
				"addr", addr,
				"idle_timeout", idleTimeout,
				"sweep_interval", sweepInterval,
				"history_cap", historyCap,
				"sentry", sentryCfg,
				"llm", llmCfg,
				"storage", storageCfg,
				"renderer", rendererCfg,
				"templates", templatesCfg,
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			registry, err := templatesCfg.Configure()
			if err != nil {
				return err
			}

			// Configure LLM client (automatically selects Claude if available, otherwise Gemini)
			llmClient, err := llmCfg.Configure(ctx)
			if err != nil {
				return err
			}

			storageClient, err := storageCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer storageClient.Close(ctx)

			rendererClient, err := rendererCfg.Configure(ctx)
			if err != nil {
				return err
			}

			uc := usecase.New(
				usecase.WithModelClient(llmAdapter.New(llmClient)),
				usecase.WithRenderer(rendererClient),
				usecase.WithArtifactService(storageService.New(storageClient,
					storageService.WithPrefix(storageCfg.Prefix()),
				)),
				usecase.WithRegistry(registry),
				usecase.WithIdleTimeout(idleTimeout),
				usecase.WithHistoryCap(historyCap),
			)

			sweepCtx, stopSweeper := context.WithCancel(ctx)
			defer stopSweeper()
			go uc.RunSweeper(sweepCtx, sweepInterval)

			httpServer := http.Server{
				Addr:              addr,
				Handler:           server.New(uc),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				if err := httpServer.ListenAndServe(); err != nil {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.From(ctx).Info("shutting down", "signal", sig.String())
				stopSweeper()

				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			}
		},
	}
}
