package auth

import "errors"

var (
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrNotFound           = errors.New("auth: principal not found")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidInput       = errors.New("auth: invalid input")
	ErrInvalidToken       = errors.New("auth: invalid token")
)
