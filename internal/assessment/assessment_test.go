package assessment

import (
	"context"
	"errors"
	"testing"
	"time"
)

func sampleAssessment(cpf string) Assessment {
	return Assessment{
		SpringID:    "spring-1",
		OwnerCPF:    cpf,
		EvaluatorID: "evaluator-1",
		Notes:       "nascente em bom estado",
	}
}

func TestCreateDefaultsToPending(t *testing.T) {
	svc := NewInMemory()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleAssessment("111.222.333-44"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected default status %q, got %q", StatusPending, created.Status)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("incomplete record: %+v", created)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewInMemory()
	ctx := context.Background()

	a := sampleAssessment("111")
	a.SpringID = ""
	if _, err := svc.Create(ctx, a); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing spring, got %v", err)
	}

	a = sampleAssessment("")
	if _, err := svc.Create(ctx, a); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing cpf, got %v", err)
	}

	a = sampleAssessment("111")
	a.Status = "em análise"
	if _, err := svc.Create(ctx, a); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}

func TestListByOwnerCPF(t *testing.T) {
	svc := NewInMemory()
	ctx := context.Background()

	for _, cpf := range []string{"111", "111", "222"} {
		if _, err := svc.Create(ctx, sampleAssessment(cpf)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, err := svc.ListByOwnerCPF(ctx, "111")
	if err != nil {
		t.Fatalf("ListByOwnerCPF: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 assessments, got %d", len(items))
	}
	for _, a := range items {
		if a.OwnerCPF != "111" {
			t.Fatalf("foreign assessment in listing: %+v", a)
		}
	}
}

func TestUpdateStatusAndAssessedAt(t *testing.T) {
	svc := NewInMemory()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleAssessment("111"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	approved := StatusApproved
	when := time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, created.ID, Update{Status: &approved, AssessedAt: &when})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != StatusApproved {
		t.Fatalf("status not applied: %+v", updated)
	}
	if updated.AssessedAt == nil || !updated.AssessedAt.Equal(when) {
		t.Fatalf("assessedAt not applied: %+v", updated.AssessedAt)
	}

	bad := "qualquer"
	if _, err := svc.Update(ctx, created.ID, Update{Status: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", Update{Status: &approved}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := NewInMemory()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleAssessment("111"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
