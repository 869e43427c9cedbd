package auth

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"aguaviva.org/internal/ids"
)

var _ Store = (*InMemory)(nil)

// InMemory implements Store with in-process concurrency safety. Tests and
// local runs use it; production wires PGStore.
type InMemory struct {
	mu   sync.RWMutex
	byID map[Kind]map[string]Principal
}

// NewInMemory creates an empty account store.
func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[Kind]map[string]Principal)}
}

func (s *InMemory) collection(kind Kind) map[string]Principal {
	col, ok := s.byID[kind]
	if !ok {
		col = make(map[string]Principal)
		s.byID[kind] = col
	}
	return col
}

func (s *InMemory) Insert(ctx context.Context, p Principal) (Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(p.Kind)
	for _, existing := range col {
		if existing.Email == p.Email {
			return Principal{}, ErrEmailTaken
		}
	}
	if p.ID == "" {
		p.ID = ids.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	col[p.ID] = copyPrincipal(p)
	return copyPrincipal(p), nil
}

func (s *InMemory) Find(ctx context.Context, kind Kind, id string) (Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[kind][id]
	if !ok {
		return Principal{}, ErrNotFound
	}
	return copyPrincipal(p), nil
}

func (s *InMemory) FindByEmail(ctx context.Context, kind Kind, email string) (Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Exact match: emails are stored and compared as provided, no
	// normalization.
	for _, p := range s.byID[kind] {
		if p.Email == email {
			return copyPrincipal(p), nil
		}
	}
	return Principal{}, ErrNotFound
}

func (s *InMemory) List(ctx context.Context, kind Kind) ([]Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Principal, 0, len(s.byID[kind]))
	for _, p := range s.byID[kind] {
		out = append(out, copyPrincipal(p))
	}
	// ULIDs sort by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) Update(ctx context.Context, kind Kind, id string, upd Update) (Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(kind)
	p, ok := col[id]
	if !ok {
		return Principal{}, ErrNotFound
	}
	if upd.Email != nil && *upd.Email != p.Email {
		for otherID, other := range col {
			if otherID != id && other.Email == *upd.Email {
				return Principal{}, ErrEmailTaken
			}
		}
		p.Email = *upd.Email
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		p.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		p.Role = *upd.Role
	}
	if upd.Profile != nil {
		p.Profile = upd.Profile
	}
	p.UpdatedAt = time.Now().UTC()
	col[id] = copyPrincipal(p)
	return copyPrincipal(p), nil
}

func (s *InMemory) Delete(ctx context.Context, kind Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(kind)
	if _, ok := col[id]; !ok {
		return ErrNotFound
	}
	delete(col, id)
	return nil
}

func copyPrincipal(p Principal) Principal {
	if p.Profile != nil {
		profile := *p.Profile
		profile.SpringUses = slices.Clone(p.Profile.SpringUses)
		p.Profile = &profile
	}
	return p
}
