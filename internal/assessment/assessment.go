package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Package assessment tracks field evaluations of registered springs. An
// assessment references a spring by id and the proprietário by CPF; the
// references are not validated against the other services.

var (
	ErrNotFound     = errors.New("assessment: not found")
	ErrInvalidInput = errors.New("assessment: invalid input")
)

// Assessment statuses.
const (
	StatusPending  = "pendente"
	StatusApproved = "aprovada"
	StatusRejected = "reprovada"
)

// Assessment is one evaluation record.
type Assessment struct {
	ID          string     `json:"id"`
	SpringID    string     `json:"springId"`
	OwnerCPF    string     `json:"ownerCpf"`
	EvaluatorID string     `json:"evaluatorId"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	AssessedAt  *time.Time `json:"assessedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Update carries optional field changes; nil leaves a field untouched.
type Update struct {
	EvaluatorID *string
	Status      *string
	Notes       *string
	AssessedAt  *time.Time
}

// Service is the assessment registry. Implementations return ErrNotFound for
// misses and ErrInvalidInput for rejected payloads.
type Service interface {
	Create(ctx context.Context, a Assessment) (Assessment, error)
	Get(ctx context.Context, id string) (Assessment, error)
	List(ctx context.Context) ([]Assessment, error)
	ListByOwnerCPF(ctx context.Context, cpf string) ([]Assessment, error)
	Update(ctx context.Context, id string, upd Update) (Assessment, error)
	Delete(ctx context.Context, id string) error
}

func validate(a Assessment) error {
	if strings.TrimSpace(a.SpringID) == "" {
		return fmt.Errorf("%w: springId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(a.OwnerCPF) == "" {
		return fmt.Errorf("%w: ownerCpf is required", ErrInvalidInput)
	}
	switch a.Status {
	case StatusPending, StatusApproved, StatusRejected:
		return nil
	default:
		return fmt.Errorf("%w: unsupported status %q", ErrInvalidInput, a.Status)
	}
}
