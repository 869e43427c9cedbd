package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"aguaviva.org/internal/spring"
)

type springRequest struct {
	OwnerID      string          `json:"ownerId"`
	OwnerName    string          `json:"ownerName"`
	Location     spring.Location `json:"location"`
	Altitude     float64         `json:"altitude"`
	Municipality string          `json:"municipality"`
	Reference    string          `json:"reference"`
	HasCAR       bool            `json:"hasCAR"`
	CARNumber    string          `json:"carNumber"`
	HasAPP       bool            `json:"hasAPP"`
	APPStatus    string          `json:"appStatus"`
}

type updateSpringRequest struct {
	OwnerName    *string          `json:"ownerName"`
	Location     *spring.Location `json:"location"`
	Altitude     *float64         `json:"altitude"`
	Municipality *string          `json:"municipality"`
	Reference    *string          `json:"reference"`
	HasCAR       *bool            `json:"hasCAR"`
	CARNumber    *string          `json:"carNumber"`
	HasAPP       *bool            `json:"hasAPP"`
	APPStatus    *string          `json:"appStatus"`
}

func (a *API) handleSpringsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createSpring(w, r)
	case http.MethodGet:
		a.listSprings(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleSpringResource(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/springs/"), "/")
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
		a.listSpringsByOwner(w, r, rest)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "recurso não encontrado")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getSpring(w, r, path)
	case http.MethodPut:
		a.updateSpring(w, r, path)
	case http.MethodDelete:
		a.deleteSpring(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) createSpring(w http.ResponseWriter, r *http.Request) {
	var req springRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	created, err := a.springs.Create(r.Context(), spring.Spring{
		OwnerID:      req.OwnerID,
		OwnerName:    req.OwnerName,
		Location:     req.Location,
		Altitude:     req.Altitude,
		Municipality: req.Municipality,
		Reference:    req.Reference,
		HasCAR:       req.HasCAR,
		CARNumber:    req.CARNumber,
		HasAPP:       req.HasAPP,
		APPStatus:    req.APPStatus,
	})
	if err != nil {
		handleSpringError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/springs/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) listSprings(w http.ResponseWriter, r *http.Request) {
	springs, err := a.springs.List(r.Context())
	if err != nil {
		handleSpringError(w, r, err)
		return
	}
	if springs == nil {
		springs = []spring.Spring{}
	}
	writeJSON(w, http.StatusOK, springs)
}

func (a *API) listSpringsByOwner(w http.ResponseWriter, r *http.Request, ownerID string) {
	springs, err := a.springs.ListByOwner(r.Context(), ownerID)
	if err != nil {
		handleSpringError(w, r, err)
		return
	}
	if springs == nil {
		springs = []spring.Spring{}
	}
	writeJSON(w, http.StatusOK, springs)
}

func (a *API) getSpring(w http.ResponseWriter, r *http.Request, id string) {
	sp, err := a.springs.Get(r.Context(), id)
	if err != nil {
		handleSpringError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (a *API) updateSpring(w http.ResponseWriter, r *http.Request, id string) {
	var req updateSpringRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	sp, err := a.springs.Update(r.Context(), id, spring.Update{
		OwnerName:    req.OwnerName,
		Location:     req.Location,
		Altitude:     req.Altitude,
		Municipality: req.Municipality,
		Reference:    req.Reference,
		HasCAR:       req.HasCAR,
		CARNumber:    req.CARNumber,
		HasAPP:       req.HasAPP,
		APPStatus:    req.APPStatus,
	})
	if err != nil {
		handleSpringError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (a *API) deleteSpring(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.springs.Delete(r.Context(), id); err != nil {
		handleSpringError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Nascente removida com sucesso.",
	})
}

func handleSpringError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, spring.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "Nascente não encontrada")
	case errors.Is(err, spring.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		logInternal(r, err)
		writeError(w, r, http.StatusInternalServerError, msgInternal)
	}
}
