package httpapi

import (
	"errors"
	"net/http"

	"aguaviva.org/internal/auth"
)

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUserResponse struct {
	Token string           `json:"token"`
	User  auth.UserSummary `json:"user"`
}

func (a *API) handleUserRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req registerUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user, err := a.accounts.RegisterUser(r.Context(), auth.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		a.handleUserAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) handleUserLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req loginUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	login, err := a.accounts.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		a.handleUserAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginUserResponse{Token: login.Token, User: login.User})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if err := a.accounts.Logout(r.Context()); err != nil {
		logInternal(r, err)
		writeError(w, r, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logout realizado com sucesso.",
	})
}

func (a *API) handleUserAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(w, r, http.StatusBadRequest, "Email já cadastrado.")
	case errors.Is(err, auth.ErrNotFound):
		writeError(w, r, http.StatusBadRequest, "Usuário não encontrado.")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, r, http.StatusBadRequest, "Senha incorreta.")
	case errors.Is(err, auth.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		logInternal(r, err)
		writeError(w, r, http.StatusInternalServerError, msgInternal)
	}
}
