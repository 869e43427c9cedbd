package assessment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aguaviva.org/internal/ids"
)

var _ Service = (*PGStore)(nil)

// PGStore implements Service on PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const assessmentColumns = `id, spring_id, owner_cpf, evaluator_id, status,
	notes, assessed_at, created_at, updated_at`

func (s *PGStore) Create(ctx context.Context, a Assessment) (Assessment, error) {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if err := validate(a); err != nil {
		return Assessment{}, err
	}
	if a.ID == "" {
		a.ID = ids.New()
	}
	row := s.db.QueryRowContext(ctx, `
		insert into assessments (id, spring_id, owner_cpf, evaluator_id,
			status, notes, assessed_at)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning created_at, updated_at
	`, a.ID, a.SpringID, a.OwnerCPF, a.EvaluatorID, a.Status, a.Notes,
		a.AssessedAt)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (s *PGStore) Get(ctx context.Context, id string) (Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+assessmentColumns+` from assessments where id=$1`, id)
	return scanAssessment(row)
}

func (s *PGStore) List(ctx context.Context) ([]Assessment, error) {
	return s.query(ctx,
		`select `+assessmentColumns+` from assessments order by id`)
}

func (s *PGStore) ListByOwnerCPF(ctx context.Context, cpf string) ([]Assessment, error) {
	return s.query(ctx,
		`select `+assessmentColumns+` from assessments where owner_cpf=$1 order by id`,
		cpf)
}

func (s *PGStore) Update(ctx context.Context, id string, upd Update) (Assessment, error) {
	if upd.Status != nil {
		switch *upd.Status {
		case StatusPending, StatusApproved, StatusRejected:
		default:
			return Assessment{}, fmt.Errorf("%w: unsupported status %q", ErrInvalidInput, *upd.Status)
		}
	}
	row := s.db.QueryRowContext(ctx, `
		update assessments set
			evaluator_id = coalesce($2, evaluator_id),
			status       = coalesce($3, status),
			notes        = coalesce($4, notes),
			assessed_at  = coalesce($5, assessed_at),
			updated_at   = now()
		where id=$1
		returning `+assessmentColumns,
		id, upd.EvaluatorID, upd.Status, upd.Notes, upd.AssessedAt)
	return scanAssessment(row)
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from assessments where id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) query(ctx context.Context, q string, args ...any) ([]Assessment, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAssessment(row scannable) (Assessment, error) {
	var (
		a          Assessment
		assessedAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.SpringID, &a.OwnerCPF, &a.EvaluatorID,
		&a.Status, &a.Notes, &assessedAt, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Assessment{}, ErrNotFound
	}
	if err != nil {
		return Assessment{}, err
	}
	if assessedAt.Valid {
		t := assessedAt.Time
		a.AssessedAt = &t
	}
	return a, nil
}
