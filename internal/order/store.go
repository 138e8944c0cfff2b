package order

import (
	"context"
	"sync"

	"mindhaven/internal/apperr"
	"mindhaven/internal/model"
)

// Store is the injected order registry. Get returns (nil, nil) for an
// unknown id. MarkPaid performs the pending → paid transition atomically
// and reports whether it changed anything; it fails with
// apperr.ErrNotFound for an unknown id.
type Store interface {
	Put(ctx context.Context, o *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	MarkPaid(ctx context.Context, id string) (bool, error)
}

// MemoryStore keeps orders in a process-local map. The default store:
// orders live exactly as long as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]*model.Order)}
}

func (s *MemoryStore) Put(_ context.Context, o *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (s *MemoryStore) MarkPaid(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return false, apperr.ErrNotFound
	}
	if o.Status == model.OrderPaid {
		return false, nil
	}
	o.Status = model.OrderPaid
	return true, nil
}
