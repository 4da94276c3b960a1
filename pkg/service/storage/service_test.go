package storage_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/m-mizutani/gt"
	adapter "github.com/slidekit-lab/slidekit/pkg/adapter/storage"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"github.com/slidekit-lab/slidekit/pkg/service/storage"
)

func TestArtifactRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := storage.New(adapter.NewMemoryClient(), storage.WithPrefix("test/"))

	result := &deck.RenderResult{
		Filename:    "launch-plan.pptx",
		ContentType: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		Data:        []byte("PK\x03\x04 fake pptx bytes"),
	}

	artifact := gt.R1(svc.PutArtifact(ctx, result)).NoError(t)
	gt.NoError(t, artifact.ID.Validate())
	gt.V(t, artifact.Filename).Equal("launch-plan.pptx")
	gt.V(t, artifact.Size).Equal(int64(len(result.Data)))

	meta := gt.R1(svc.GetArtifact(ctx, artifact.ID)).NoError(t)
	gt.V(t, meta.Filename).Equal("launch-plan.pptx")
	gt.V(t, meta.ContentType).Equal(result.ContentType)

	r := gt.R1(svc.OpenArtifact(ctx, artifact.ID)).NoError(t)
	defer func() { _ = r.Close() }()
	data := gt.R1(io.ReadAll(r)).NoError(t)
	gt.A(t, data).Equal(result.Data)
}

func TestArtifactNotFound(t *testing.T) {
	ctx := context.Background()
	svc := storage.New(adapter.NewMemoryClient())

	_, err := svc.GetArtifact(ctx, types.NewArtifactID())
	gt.True(t, errors.Is(err, errs.ErrArtifactNotFound))

	_, err = svc.OpenArtifact(ctx, types.NewArtifactID())
	gt.True(t, errors.Is(err, errs.ErrArtifactNotFound))
}
