package assessment

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
	byID map[string]Assessment
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[string]Assessment)}
}

func (s *InMemory) Create(ctx context.Context, a Assessment) (Assessment, error) {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if err := validate(a); err != nil {
		return Assessment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = ids.New()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.byID[a.ID] = a
	return a, nil
}

func (s *InMemory) Get(ctx context.Context, id string) (Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	return a, nil
}

func (s *InMemory) List(ctx context.Context) ([]Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Assessment, 0, len(s.byID))
	for _, a := range s.byID {
		out = append(out, a)
	}
	sortByID(out)
	return out, nil
}

func (s *InMemory) ListByOwnerCPF(ctx context.Context, cpf string) ([]Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Assessment
	for _, a := range s.byID {
		if a.OwnerCPF == cpf {
			out = append(out, a)
		}
	}
	sortByID(out)
	return out, nil
}

func (s *InMemory) Update(ctx context.Context, id string, upd Update) (Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	if upd.EvaluatorID != nil {
		a.EvaluatorID = *upd.EvaluatorID
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.Notes != nil {
		a.Notes = *upd.Notes
	}
	if upd.AssessedAt != nil {
		a.AssessedAt = upd.AssessedAt
	}
	if err := validate(a); err != nil {
		return Assessment{}, err
	}
	a.UpdatedAt = time.Now().UTC()
	s.byID[id] = a
	return a, nil
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

// ULIDs sort by creation time.
func sortByID(list []Assessment) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
