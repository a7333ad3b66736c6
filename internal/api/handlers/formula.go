package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/semprove/internal/service"
)

type FormulaHandler struct {
	svc *service.FormulaService
}

func NewFormulaHandler(svc *service.FormulaService) *FormulaHandler {
	return &FormulaHandler{svc: svc}
}

type createFormulaRequest struct {
	SentenceID int64  `json:"sentence_id"`
	Text       string `json:"text"`
	Library    string `json:"library"`
}

func (h *FormulaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFormulaRequest
	if !decode(w, r, &req) {
		return
	}
	if req.SentenceID < 1 {
		writeError(w, http.StatusBadRequest, "sentence_id is required")
		return
	}
	f, err := h.svc.Register(r.Context(), req.SentenceID, req.Text, req.Library)
	if err != nil {
		writeServiceError(w, err, "failed to register formula")
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FormulaHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "formula")
	if !ok {
		return
	}
	f, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get formula")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

type updateQualityRequest struct {
	Quality *bool `json:"quality"`
}

func (h *FormulaHandler) UpdateQuality(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "formula")
	if !ok {
		return
	}
	var req updateQualityRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Quality == nil {
		writeError(w, http.StatusBadRequest, "quality is required")
		return
	}
	if err := h.svc.UpdateQuality(r.Context(), id, *req.Quality); err != nil {
		writeServiceError(w, err, "failed to update quality")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
