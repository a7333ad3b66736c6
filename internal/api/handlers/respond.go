package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/logic"
	"github.com/Harshitk-cp/semprove/internal/service"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request bodies. Snapshots are the largest payload.
const maxBodyBytes = 64 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request, what string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid "+what+" id")
		return 0, false
	}
	return id, true
}

// writeServiceError maps service errors to responses. Anything unmapped,
// store failures included, is a 500 carrying only the fallback message.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSentenceNotFound),
		errors.Is(err, service.ErrFormulaNotFound),
		errors.Is(err, service.ErrTheoremNotFound),
		errors.Is(err, service.ErrRowNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrInvalidFormula),
		errors.Is(err, service.ErrSentenceTextEmpty),
		errors.Is(err, service.ErrUnsupportedSnapshot),
		errors.Is(err, domain.ErrUnknownTable):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrIneligibleFormula):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrSnapshotConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrDerivationUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
