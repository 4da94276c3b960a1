package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"github.com/slidekit-lab/slidekit/pkg/usecase"
	"github.com/slidekit-lab/slidekit/pkg/utils/safe"
)

type artifactResponse struct {
	ArtifactID  types.ArtifactID `json:"artifact_id"`
	Filename    string           `json:"filename"`
	Size        int64            `json:"size"`
	DownloadURL string           `json:"download_url"`
}

func toArtifactResponse(artifact *deck.Artifact) *artifactResponse {
	return &artifactResponse{
		ArtifactID:  artifact.ID,
		Filename:    artifact.Filename,
		Size:        artifact.Size,
		DownloadURL: "/api/v1/download/" + artifact.ID.String(),
	}
}

func templatesHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]any{
			"templates": uc.Templates(),
			"default":   uc.Defaults().Template,
		})
	}
}

func quickGenerateHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req usecase.QuickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(err, "invalid request body", goerr.T(errs.TagInvalidRequest)))
			return
		}

		artifact, outline, err := uc.GenerateFromTopic(r.Context(), &req)
		if err != nil {
			handleError(w, r, err)
			return
		}

		resp := struct {
			*artifactResponse
			Outline *deck.Outline `json:"outline"`
		}{toArtifactResponse(artifact), outline}
		respondJSON(w, r, http.StatusCreated, resp)
	}
}

func downloadHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ArtifactID(chi.URLParam(r, "artifactID"))

		artifact, reader, err := uc.OpenArtifact(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		defer safe.Close(r.Context(), reader)

		w.Header().Set("Content-Type", artifact.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
		w.Header().Set("Content-Length", strconv.FormatInt(artifact.Size, 10))
		safe.Copy(r.Context(), w, reader)
	}
}
