package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/semprove/internal/service"
)

type TheoremHandler struct {
	svc *service.ProofService
}

func NewTheoremHandler(svc *service.ProofService) *TheoremHandler {
	return &TheoremHandler{svc: svc}
}

type proveRequest struct {
	PremiseIDs   []int64 `json:"premise_ids"`
	ConclusionID int64   `json:"conclusion_id"`
}

// Create runs a proof and records it. The response status is 201 whatever the
// entailment result; only invalid input or a store failure is an error.
func (h *TheoremHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req proveRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ConclusionID < 1 {
		writeError(w, http.StatusBadRequest, "conclusion_id is required")
		return
	}
	report, err := h.svc.Prove(r.Context(), req.PremiseIDs, req.ConclusionID)
	if err != nil {
		writeServiceError(w, err, "failed to record theorem")
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (h *TheoremHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "theorem")
	if !ok {
		return
	}
	th, err := h.svc.GetTheorem(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get theorem")
		return
	}
	writeJSON(w, http.StatusOK, th)
}
