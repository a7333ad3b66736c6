package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/service"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "row")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "table"), id); err != nil {
		writeServiceError(w, err, "failed to delete row")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Export(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to export snapshot")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot
	if !decode(w, r, &snap) {
		return
	}
	if err := h.svc.Import(r.Context(), &snap); err != nil {
		writeServiceError(w, err, "failed to import snapshot")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"sentences": len(snap.Sentences),
		"formulas":  len(snap.Formulas),
		"theorems":  len(snap.Theorems),
	})
}
