package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/interfaces"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"github.com/slidekit-lab/slidekit/pkg/utils/clock"
	"github.com/slidekit-lab/slidekit/pkg/utils/errutil"
	"github.com/slidekit-lab/slidekit/pkg/utils/safe"
)

const (
	StorageSchemaVersion = "v1"
)

// Service persists rendered presentation files and their metadata through a
// StorageClient. Each artifact is two objects: the raw bytes and a JSON
// metadata record used for the download response headers.
type Service struct {
	prefix        string
	storageClient interfaces.StorageClient
}

func New(storageClient interfaces.StorageClient, opts ...Option) *Service {
	s := &Service{storageClient: storageClient}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

func WithPrefix(prefix string) Option {
	return func(s *Service) {
		s.prefix = prefix
	}
}

func pathToData(prefix string, id types.ArtifactID) string {
	return fmt.Sprintf("%s%s/artifact/%s.bin", prefix, StorageSchemaVersion, id)
}

func pathToMeta(prefix string, id types.ArtifactID) string {
	return fmt.Sprintf("%s%s/artifact/%s.json", prefix, StorageSchemaVersion, id)
}

// PutArtifact stores a render result and returns the artifact record
func (s *Service) PutArtifact(ctx context.Context, result *deck.RenderResult) (*deck.Artifact, error) {
	artifact := &deck.Artifact{
		ID:          types.NewArtifactID(),
		Filename:    result.Filename,
		ContentType: result.ContentType,
		Size:        int64(len(result.Data)),
		CreatedAt:   clock.Now(ctx),
	}

	w := s.storageClient.PutObject(ctx, pathToData(s.prefix, artifact.ID))
	if _, err := w.Write(result.Data); err != nil {
		return nil, goerr.Wrap(err, "failed to write artifact data",
			goerr.TV(errutil.ArtifactIDKey, artifact.ID))
	}
	if err := w.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close artifact data",
			goerr.TV(errutil.ArtifactIDKey, artifact.ID))
	}

	mw := s.storageClient.PutObject(ctx, pathToMeta(s.prefix, artifact.ID))
	if err := json.NewEncoder(mw).Encode(artifact); err != nil {
		return nil, goerr.Wrap(err, "failed to write artifact metadata",
			goerr.TV(errutil.ArtifactIDKey, artifact.ID))
	}
	if err := mw.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close artifact metadata",
			goerr.TV(errutil.ArtifactIDKey, artifact.ID))
	}

	return artifact, nil
}

// GetArtifact loads the metadata record for id
func (s *Service) GetArtifact(ctx context.Context, id types.ArtifactID) (*deck.Artifact, error) {
	r, err := s.storageClient.GetObject(ctx, pathToMeta(s.prefix, id))
	if err != nil {
		return nil, goerr.Wrap(errs.ErrArtifactNotFound, "artifact metadata not found",
			goerr.TV(errutil.ArtifactIDKey, id))
	}
	defer safe.Close(ctx, r)

	var artifact deck.Artifact
	if err := json.NewDecoder(r).Decode(&artifact); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal artifact metadata",
			goerr.TV(errutil.ArtifactIDKey, id))
	}
	return &artifact, nil
}

// OpenArtifact returns a reader for the stored file bytes. The caller closes
// the reader.
func (s *Service) OpenArtifact(ctx context.Context, id types.ArtifactID) (io.ReadCloser, error) {
	r, err := s.storageClient.GetObject(ctx, pathToData(s.prefix, id))
	if err != nil {
		return nil, goerr.Wrap(errs.ErrArtifactNotFound, "artifact data not found",
			goerr.TV(errutil.ArtifactIDKey, id))
	}
	return r, nil
}
