package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"aguaviva.org/internal/ids"
)

const pgErrUniqueViolation = "23505"

var _ Store = (*PGStore)(nil)

// PGStore implements Store on PostgreSQL. The unique index on (kind, email)
// in the principals table is the real duplicate-email enforcement: when two
// concurrent registrations pass the service-level lookup, only one insert
// survives and the loser surfaces as ErrEmailTaken.
type PGStore struct {
	db *sql.DB
}

// NewPGStore wraps an open database handle.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const principalColumns = `id, kind, email, password_hash, name, role, profile, created_at, updated_at`

func (s *PGStore) Insert(ctx context.Context, p Principal) (Principal, error) {
	if p.ID == "" {
		p.ID = ids.New()
	}
	profile, err := marshalProfile(p.Profile)
	if err != nil {
		return Principal{}, err
	}
	row := s.db.QueryRowContext(ctx, `
		insert into principals (id, kind, email, password_hash, name, role, profile)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning created_at, updated_at
	`, p.ID, string(p.Kind), p.Email, p.PasswordHash, p.Name, p.Role, profile)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return Principal{}, ErrEmailTaken
		}
		return Principal{}, err
	}
	return p, nil
}

func (s *PGStore) Find(ctx context.Context, kind Kind, id string) (Principal, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+principalColumns+` from principals where kind=$1 and id=$2`,
		string(kind), id)
	return scanPrincipal(row)
}

func (s *PGStore) FindByEmail(ctx context.Context, kind Kind, email string) (Principal, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+principalColumns+` from principals where kind=$1 and email=$2`,
		string(kind), email)
	return scanPrincipal(row)
}

func (s *PGStore) List(ctx context.Context, kind Kind) ([]Principal, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+principalColumns+` from principals where kind=$1 order by id`,
		string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Principal
	for rows.Next() {
		p, err := scanPrincipal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *PGStore) Update(ctx context.Context, kind Kind, id string, upd Update) (Principal, error) {
	profile, err := marshalProfile(upd.Profile)
	if err != nil {
		return Principal{}, err
	}
	row := s.db.QueryRowContext(ctx, `
		update principals set
			name          = coalesce($3, name),
			email         = coalesce($4, email),
			password_hash = coalesce($5, password_hash),
			role          = coalesce($6, role),
			profile       = coalesce($7, profile),
			updated_at    = now()
		where kind=$1 and id=$2
		returning `+principalColumns,
		string(kind), id, upd.Name, upd.Email, upd.PasswordHash, upd.Role, profile)
	p, err := scanPrincipal(row)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return Principal{}, ErrEmailTaken
		}
		return Principal{}, err
	}
	return p, nil
}

func (s *PGStore) Delete(ctx context.Context, kind Kind, id string) error {
	res, err := s.db.ExecContext(ctx,
		`delete from principals where kind=$1 and id=$2`, string(kind), id)
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

type scannable interface {
	Scan(dest ...any) error
}

func scanPrincipal(row scannable) (Principal, error) {
	var (
		p       Principal
		kind    string
		profile []byte
	)
	err := row.Scan(&p.ID, &kind, &p.Email, &p.PasswordHash, &p.Name, &p.Role,
		&profile, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Principal{}, ErrNotFound
	}
	if err != nil {
		return Principal{}, err
	}
	p.Kind = Kind(kind)
	if len(profile) > 0 {
		var op OwnerProfile
		if err := json.Unmarshal(profile, &op); err != nil {
			return Principal{}, fmt.Errorf("decode profile: %w", err)
		}
		p.Profile = &op
	}
	return p, nil
}

func marshalProfile(p *OwnerProfile) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return data, nil
}

func maybePgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
