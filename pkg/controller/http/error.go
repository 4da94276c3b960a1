package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(r.Context()).Error("failed to encode response", "error", err)
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.From(r.Context())

	status := http.StatusInternalServerError
	switch {
	case goerr.HasTag(err, errs.TagNotFound):
		logger.Warn("Not Found", "error", err)
		status = http.StatusNotFound

	case goerr.HasTag(err, errs.TagValidation), goerr.HasTag(err, errs.TagInvalidRequest):
		logger.Warn("Bad Request", "error", err)
		status = http.StatusBadRequest

	case goerr.HasTag(err, errs.TagInvalidState):
		logger.Warn("Conflict", "error", err)
		status = http.StatusConflict

	case goerr.HasTag(err, errs.TagExternal), goerr.HasTag(err, errs.TagInvalidLLMResponse):
		logger.Error("External Service Error", "error", err)
		status = http.StatusBadGateway

	case goerr.HasTag(err, errs.TagTimeout):
		logger.Error("Gateway Timeout", "error", err)
		status = http.StatusGatewayTimeout

	default:
		errs.Handle(r.Context(), err)
	}

	respondJSON(w, r, status, errorResponse{Error: err.Error()})
}
