package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/staypulse/pricingservice/internal/domain"
)

// MemoryStore is an in-memory implementation of the catalog repositories,
// used in tests and for deployments running from a static snapshot.
type MemoryStore struct {
	mu     sync.RWMutex
	units  map[string]domain.LodgingUnit
	events map[string]domain.Event
	order  []string // event insertion order, to keep listings stable
}

// NewMemoryStore creates an empty in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		units:  make(map[string]domain.LodgingUnit),
		events: make(map[string]domain.Event),
	}
}

// GetByName retrieves a lodging unit by its unique name
func (s *MemoryStore) GetByName(ctx context.Context, name string) (domain.LodgingUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	unit, ok := s.units[name]
	if !ok {
		return domain.LodgingUnit{}, domain.NewNotFoundError("lodging unit", name)
	}
	return unit, nil
}

// List retrieves every lodging unit, sorted by name for determinism.
func (s *MemoryStore) List(ctx context.Context) ([]domain.LodgingUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LodgingUnit, 0, len(s.units))
	for _, u := range s.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Upsert stores a lodging unit snapshot
func (s *MemoryStore) Upsert(ctx context.Context, unit domain.LodgingUnit) error {
	if unit.Name == "" {
		return domain.NewInvalidInputError("lodging unit name is required", "")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units[unit.Name] = unit
	return nil
}

// ListEvents retrieves every catalog event in insertion order.
func (s *MemoryStore) ListEvents(ctx context.Context) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, 0, len(s.events))
	for _, title := range s.order {
		out = append(out, s.events[title])
	}
	return out, nil
}

// UpsertEvent stores an event snapshot keyed by title
func (s *MemoryStore) UpsertEvent(ctx context.Context, event domain.Event) error {
	if event.Title == "" {
		return domain.NewInvalidInputError("event title is required", "")
	}
	if event.Date == "" && (event.DateStart == "" || event.DateEnd == "") {
		return domain.NewInvalidInputError("event needs a date or a start/end pair", event.Title)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.events[event.Title]; !exists {
		s.order = append(s.order, event.Title)
	}
	s.events[event.Title] = event
	return nil
}

// EventStore adapts a MemoryStore to the EventRepository interface.
type EventStore struct {
	*MemoryStore
}

// NewEventStore wraps a MemoryStore as an EventRepository.
func NewEventStore(store *MemoryStore) *EventStore {
	return &EventStore{MemoryStore: store}
}

// List retrieves every catalog event
func (s *EventStore) List(ctx context.Context) ([]domain.Event, error) {
	return s.ListEvents(ctx)
}

// Upsert stores an event snapshot
func (s *EventStore) Upsert(ctx context.Context, event domain.Event) error {
	return s.UpsertEvent(ctx, event)
}
