package httpapi

import (
	"errors"
	"net/http"

	"aguaviva.org/internal/auth"
)

// Owner registration is a flat pt-BR payload: credentials plus the
// self-declared property profile in one object.
type registerOwnerRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
	auth.OwnerProfile
}

type loginOwnerRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginOwnerResponse struct {
	Token string            `json:"token"`
	Owner auth.OwnerSummary `json:"proprietario"`
}

func (a *API) handleOwnerRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req registerOwnerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	owner, err := a.accounts.RegisterOwner(r.Context(), auth.RegisterOwnerInput{
		Email:    req.Email,
		Password: req.Senha,
		Profile:  req.OwnerProfile,
	})
	if err != nil {
		a.handleOwnerAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, owner)
}

func (a *API) handleOwnerLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req loginOwnerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	login, err := a.accounts.LoginOwner(r.Context(), req.Email, req.Senha)
	if err != nil {
		a.handleOwnerAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginOwnerResponse{Token: login.Token, Owner: login.Owner})
}

func (a *API) handleOwnerAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(w, r, http.StatusBadRequest, "E-mail já cadastrado.")
	case errors.Is(err, auth.ErrNotFound):
		writeError(w, r, http.StatusBadRequest, "E-mail não encontrado.")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, r, http.StatusBadRequest, "Senha incorreta.")
	case errors.Is(err, auth.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		logInternal(r, err)
		writeError(w, r, http.StatusInternalServerError, msgInternal)
	}
}
