package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"aguaviva.org/internal/assessment"
)

type assessmentRequest struct {
	SpringID    string     `json:"springId"`
	OwnerCPF    string     `json:"ownerCpf"`
	EvaluatorID string     `json:"evaluatorId"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	AssessedAt  *time.Time `json:"assessedAt"`
}

type updateAssessmentRequest struct {
	EvaluatorID *string    `json:"evaluatorId"`
	Status      *string    `json:"status"`
	Notes       *string    `json:"notes"`
	AssessedAt  *time.Time `json:"assessedAt"`
}

func (a *API) handleAssessmentsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createAssessment(w, r)
	case http.MethodGet:
		a.listAssessments(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleAssessmentResource(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/assessments/"), "/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "recurso não encontrado")
		return
	}

	if rest, ok := strings.CutPrefix(path, "owner/"); ok {
		if rest == "" || strings.Contains(rest, "/") {
			writeError(w, r, http.StatusNotFound, "recurso não encontrado")
			return
		}
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		a.listAssessmentsByOwner(w, r, rest)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "recurso não encontrado")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getAssessment(w, r, path)
	case http.MethodPut:
		a.updateAssessment(w, r, path)
	case http.MethodDelete:
		a.deleteAssessment(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	created, err := a.assessments.Create(r.Context(), assessment.Assessment{
		SpringID:    req.SpringID,
		OwnerCPF:    req.OwnerCPF,
		EvaluatorID: req.EvaluatorID,
		Status:      req.Status,
		Notes:       req.Notes,
		AssessedAt:  req.AssessedAt,
	})
	if err != nil {
		handleAssessmentError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/assessments/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) listAssessments(w http.ResponseWriter, r *http.Request) {
	items, err := a.assessments.List(r.Context())
	if err != nil {
		handleAssessmentError(w, r, err)
		return
	}
	if items == nil {
		items = []assessment.Assessment{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) listAssessmentsByOwner(w http.ResponseWriter, r *http.Request, cpf string) {
	items, err := a.assessments.ListByOwnerCPF(r.Context(), cpf)
	if err != nil {
		handleAssessmentError(w, r, err)
		return
	}
	if items == nil {
		items = []assessment.Assessment{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) getAssessment(w http.ResponseWriter, r *http.Request, id string) {
	item, err := a.assessments.Get(r.Context(), id)
	if err != nil {
		handleAssessmentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) updateAssessment(w http.ResponseWriter, r *http.Request, id string) {
	var req updateAssessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.assessments.Update(r.Context(), id, assessment.Update{
		EvaluatorID: req.EvaluatorID,
		Status:      req.Status,
		Notes:       req.Notes,
		AssessedAt:  req.AssessedAt,
	})
	if err != nil {
		handleAssessmentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) deleteAssessment(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.assessments.Delete(r.Context(), id); err != nil {
		handleAssessmentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Avaliação removida com sucesso.",
	})
}

func handleAssessmentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, assessment.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "Avaliação não encontrada")
	case errors.Is(err, assessment.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		logInternal(r, err)
		writeError(w, r, http.StatusInternalServerError, msgInternal)
	}
}
