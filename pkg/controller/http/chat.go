package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/session"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"github.com/slidekit-lab/slidekit/pkg/usecase"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
)

type sessionResponse struct {
	SessionID       types.SessionID    `json:"session_id"`
	Template        types.TemplateKey  `json:"template"`
	State           types.SessionState `json:"state"`
	IsReadyForDraft bool               `json:"is_ready_for_draft"`
	History         []session.Turn     `json:"history"`
	Draft           *deck.Outline      `json:"draft,omitempty"`
	ArtifactID      types.ArtifactID   `json:"artifact_id,omitempty"`
}

func toSessionResponse(sess *session.Session) *sessionResponse {
	return &sessionResponse{
		SessionID:       sess.ID,
		Template:        sess.Template,
		State:           sess.State,
		IsReadyForDraft: sess.State != types.SessionStateCollecting,
		History:         sess.History,
		Draft:           sess.Draft,
		ArtifactID:      sess.ArtifactID,
	}
}

func chatStartHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Template types.TemplateKey `json:"template"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(err, "invalid request body", goerr.T(errs.TagInvalidRequest)))
			return
		}

		sess, err := uc.StartChat(r.Context(), req.Template)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, toSessionResponse(sess))
	}
}

func chatGetHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := uc.GetChat(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, toSessionResponse(sess))
	}
}

func chatDeleteHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uc.DeleteChat(r.Context(), types.SessionID(chi.URLParam(r, "sessionID"))); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// chatEvent is one server-sent event in the message stream. Content chunks
// arrive with done=false; the final event has done=true and carries the
// readiness flag.
type chatEvent struct {
	Content         string `json:"content"`
	Done            bool   `json:"done"`
	IsReadyForDraft bool   `json:"is_ready_for_draft"`
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, ev chatEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal chat event")
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

func chatMessageHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.SessionID(chi.URLParam(r, "sessionID"))

		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(err, "invalid request body", goerr.T(errs.TagInvalidRequest)))
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			handleError(w, r, goerr.New("streaming unsupported", goerr.T(errs.TagInternal)))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		streamed := false
		reply, err := uc.SendMessage(r.Context(), id, req.Message, func(fragment string) error {
			streamed = true
			return writeEvent(w, flusher, chatEvent{Content: fragment})
		})
		if err != nil {
			// Nothing sent yet: report a regular HTTP error. Mid-stream
			// failures can only be signaled in-band.
			if !streamed {
				handleError(w, r, err)
				return
			}
			logging.From(r.Context()).Warn("chat stream aborted", "error", err, "session_id", id)
			_ = writeEvent(w, flusher, chatEvent{Done: true})
			return
		}

		if err := writeEvent(w, flusher, chatEvent{Done: true, IsReadyForDraft: reply.ReadyForDraft}); err != nil {
			logging.From(r.Context()).Warn("failed to write final chat event", "error", err)
		}
	}
}

func draftCreateHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outline, err := uc.CreateDraft(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, map[string]any{"draft": outline})
	}
}

func draftGetHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outline, err := uc.GetDraft(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, map[string]any{"draft": outline})
	}
}

func chatGenerateHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifact, err := uc.GenerateFromSession(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, toArtifactResponse(artifact))
	}
}
