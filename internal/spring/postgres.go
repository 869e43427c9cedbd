package spring

import (
	"context"
	"database/sql"
	"errors"

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

const springColumns = `id, owner_id, owner_name, latitude, longitude, altitude,
	municipality, reference, has_car, car_number, has_app, app_status,
	created_at, updated_at`

func (s *PGStore) Create(ctx context.Context, sp Spring) (Spring, error) {
	if err := validate(sp); err != nil {
		return Spring{}, err
	}
	if sp.ID == "" {
		sp.ID = ids.New()
	}
	row := s.db.QueryRowContext(ctx, `
		insert into springs (id, owner_id, owner_name, latitude, longitude,
			altitude, municipality, reference, has_car, car_number, has_app,
			app_status)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		returning created_at, updated_at
	`, sp.ID, sp.OwnerID, sp.OwnerName, sp.Location.Latitude,
		sp.Location.Longitude, sp.Altitude, sp.Municipality, sp.Reference,
		sp.HasCAR, sp.CARNumber, sp.HasAPP, sp.APPStatus)
	if err := row.Scan(&sp.CreatedAt, &sp.UpdatedAt); err != nil {
		return Spring{}, err
	}
	return sp, nil
}

func (s *PGStore) Get(ctx context.Context, id string) (Spring, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+springColumns+` from springs where id=$1`, id)
	return scanSpring(row)
}

func (s *PGStore) List(ctx context.Context) ([]Spring, error) {
	return s.query(ctx, `select `+springColumns+` from springs order by id`)
}

func (s *PGStore) ListByOwner(ctx context.Context, ownerID string) ([]Spring, error) {
	return s.query(ctx,
		`select `+springColumns+` from springs where owner_id=$1 order by id`,
		ownerID)
}

func (s *PGStore) Update(ctx context.Context, id string, upd Update) (Spring, error) {
	if err := validateUpdate(upd); err != nil {
		return Spring{}, err
	}
	var lat, lon *float64
	if upd.Location != nil {
		lat = &upd.Location.Latitude
		lon = &upd.Location.Longitude
	}
	row := s.db.QueryRowContext(ctx, `
		update springs set
			owner_name   = coalesce($2, owner_name),
			latitude     = coalesce($3, latitude),
			longitude    = coalesce($4, longitude),
			altitude     = coalesce($5, altitude),
			municipality = coalesce($6, municipality),
			reference    = coalesce($7, reference),
			has_car      = coalesce($8, has_car),
			car_number   = coalesce($9, car_number),
			has_app      = coalesce($10, has_app),
			app_status   = coalesce($11, app_status),
			updated_at   = now()
		where id=$1
		returning `+springColumns,
		id, upd.OwnerName, lat, lon, upd.Altitude, upd.Municipality,
		upd.Reference, upd.HasCAR, upd.CARNumber, upd.HasAPP, upd.APPStatus)
	return scanSpring(row)
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from springs where id=$1`, id)
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

func (s *PGStore) query(ctx context.Context, q string, args ...any) ([]Spring, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Spring
	for rows.Next() {
		sp, err := scanSpring(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sp)
	}
	return result, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSpring(row scannable) (Spring, error) {
	var sp Spring
	err := row.Scan(&sp.ID, &sp.OwnerID, &sp.OwnerName,
		&sp.Location.Latitude, &sp.Location.Longitude, &sp.Altitude,
		&sp.Municipality, &sp.Reference, &sp.HasCAR, &sp.CARNumber,
		&sp.HasAPP, &sp.APPStatus, &sp.CreatedAt, &sp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Spring{}, ErrNotFound
	}
	if err != nil {
		return Spring{}, err
	}
	return sp, nil
}
