package config

import (
	"context"
	"log/slog"

	"github.com/slidekit-lab/slidekit/pkg/adapter/storage"
	"github.com/slidekit-lab/slidekit/pkg/domain/interfaces"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
	"google.golang.org/api/option"

	"github.com/urfave/cli/v3"
)

type Storage struct {
	bucket    string
	prefix    string
	projectID string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "Cloud Storage bucket for generated artifacts (in-memory if not set)",
			Category:    "Storage",
			Destination: &x.bucket,
			Sources:     cli.EnvVars("SLIDEKIT_STORAGE_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "storage-prefix",
			Usage:       "Object key prefix for artifacts",
			Category:    "Storage",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("SLIDEKIT_STORAGE_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "storage-project-id",
			Usage:       "Quota project ID for Cloud Storage",
			Category:    "Storage",
			Destination: &x.projectID,
			Sources:     cli.EnvVars("SLIDEKIT_STORAGE_PROJECT_ID"),
		},
	}
}

func (x *Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("prefix", x.prefix),
		slog.String("project_id", x.projectID),
	)
}

// Configure returns a storage client. Without a bucket it falls back to an
// in-memory client, so artifacts are lost on restart.
func (x *Storage) Configure(ctx context.Context) (interfaces.StorageClient, error) {
	if x.bucket == "" {
		logging.From(ctx).Warn("storage bucket is not set, using in-memory artifact storage")
		return storage.NewMemoryClient(), nil
	}

	var opts []option.ClientOption
	if x.projectID != "" {
		opts = append(opts, option.WithQuotaProject(x.projectID))
	}

	client, err := storage.New(ctx, x.bucket, opts...)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// Prefix returns the configured object key prefix
func (x *Storage) Prefix() string {
	return x.prefix
}

// IsConfigured returns true if Storage is configured
func (x *Storage) IsConfigured() bool {
	return x.bucket != ""
}
