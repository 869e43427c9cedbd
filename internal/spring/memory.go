package spring

import (
	"context"
	"sort"
	"sync"
	"time"

	"aguaviva.org/internal/ids"
)

var _ Service = (*InMemory)(nil)

// InMemory implements Service with in-process concurrency safety.
type InMemory struct {
	mu   sync.RWMutex
	byID map[string]Spring
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[string]Spring)}
}

func (s *InMemory) Create(ctx context.Context, sp Spring) (Spring, error) {
	if err := validate(sp); err != nil {
		return Spring{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sp.ID == "" {
		sp.ID = ids.New()
	}
	now := time.Now().UTC()
	sp.CreatedAt = now
	sp.UpdatedAt = now
	s.byID[sp.ID] = sp
	return sp, nil
}

func (s *InMemory) Get(ctx context.Context, id string) (Spring, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.byID[id]
	if !ok {
		return Spring{}, ErrNotFound
	}
	return sp, nil
}

func (s *InMemory) List(ctx context.Context) ([]Spring, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Spring, 0, len(s.byID))
	for _, sp := range s.byID {
		out = append(out, sp)
	}
	sortByID(out)
	return out, nil
}

func (s *InMemory) ListByOwner(ctx context.Context, ownerID string) ([]Spring, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Spring
	for _, sp := range s.byID {
		if sp.OwnerID == ownerID {
			out = append(out, sp)
		}
	}
	sortByID(out)
	return out, nil
}

func (s *InMemory) Update(ctx context.Context, id string, upd Update) (Spring, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.byID[id]
	if !ok {
		return Spring{}, ErrNotFound
	}
	apply(&sp, upd)
	if err := validate(sp); err != nil {
		return Spring{}, err
	}
	sp.UpdatedAt = time.Now().UTC()
	s.byID[id] = sp
	return sp, nil
}

func (s *InMemory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func apply(sp *Spring, upd Update) {
	if upd.OwnerName != nil {
		sp.OwnerName = *upd.OwnerName
	}
	if upd.Location != nil {
		sp.Location = *upd.Location
	}
	if upd.Altitude != nil {
		sp.Altitude = *upd.Altitude
	}
	if upd.Municipality != nil {
		sp.Municipality = *upd.Municipality
	}
	if upd.Reference != nil {
		sp.Reference = *upd.Reference
	}
	if upd.HasCAR != nil {
		sp.HasCAR = *upd.HasCAR
	}
	if upd.CARNumber != nil {
		sp.CARNumber = *upd.CARNumber
	}
	if upd.HasAPP != nil {
		sp.HasAPP = *upd.HasAPP
	}
	if upd.APPStatus != nil {
		sp.APPStatus = *upd.APPStatus
	}
}

// ULIDs sort by creation time.
func sortByID(list []Spring) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
