package auth

import "context"

// Store is the account store: one collection per Kind, unique on
// (kind, email). The storage layer owns that invariant; the service-level
// duplicate lookup exists only for a friendlier error, since two concurrent
// registrations can both pass it before either insert lands.
// Implementations return ErrEmailTaken on a uniqueness conflict and
// ErrNotFound for misses.
type Store interface {
	Insert(ctx context.Context, p Principal) (Principal, error)
	Find(ctx context.Context, kind Kind, id string) (Principal, error)
	FindByEmail(ctx context.Context, kind Kind, email string) (Principal, error)
	List(ctx context.Context, kind Kind) ([]Principal, error)
	Update(ctx context.Context, kind Kind, id string, upd Update) (Principal, error)
	Delete(ctx context.Context, kind Kind, id string) error
}

// Update carries optional field changes; nil leaves a field untouched.
type Update struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
	Profile      *OwnerProfile
}
