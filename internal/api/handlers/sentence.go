package handlers

import (
	"net/http"
	"strconv"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/service"
)

type SentenceHandler struct {
	sentences *service.SentenceService
	formulas  *service.FormulaService
	transform *service.TransformService
}

func NewSentenceHandler(sentences *service.SentenceService, formulas *service.FormulaService, transform *service.TransformService) *SentenceHandler {
	return &SentenceHandler{sentences: sentences, formulas: formulas, transform: transform}
}

type createSentenceRequest struct {
	Text string `json:"text"`
}

func (h *SentenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSentenceRequest
	if !decode(w, r, &req) {
		return
	}
	sen, err := h.sentences.Register(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, err, "failed to register sentence")
		return
	}
	writeJSON(w, http.StatusCreated, sen)
}

func (h *SentenceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "sentence")
	if !ok {
		return
	}
	sen, err := h.sentences.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get sentence")
		return
	}
	writeJSON(w, http.StatusOK, sen)
}

// Transform composes formulas for the sentence. ?nbest=N overrides the
// configured count.
func (h *SentenceHandler) Transform(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "sentence")
	if !ok {
		return
	}
	nbest := 0
	if v := r.URL.Query().Get("nbest"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid nbest")
			return
		}
		nbest = n
	}
	res, err := h.transform.Transform(r.Context(), id, nbest)
	if err != nil {
		writeServiceError(w, err, "failed to transform sentence")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *SentenceHandler) ListFormulas(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "sentence")
	if !ok {
		return
	}
	formulas, err := h.formulas.ListBySentence(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to list formulas")
		return
	}
	if formulas == nil {
		formulas = []domain.Formula{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"formulas": formulas})
}
