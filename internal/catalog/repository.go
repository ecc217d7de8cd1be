package catalog

import (
	"context"

	"github.com/staypulse/pricingservice/internal/domain"
)

// UnitRepository supplies lodging units with their per-date base rates.
type UnitRepository interface {
	// GetByName retrieves a lodging unit by its unique name
	GetByName(ctx context.Context, name string) (domain.LodgingUnit, error)

	// List retrieves every lodging unit
	List(ctx context.Context) ([]domain.LodgingUnit, error)

	// Upsert stores a lodging unit snapshot
	Upsert(ctx context.Context, unit domain.LodgingUnit) error
}

// EventRepository supplies the scheduled-event catalog.
type EventRepository interface {
	// List retrieves every catalog event
	List(ctx context.Context) ([]domain.Event, error)

	// Upsert stores an event snapshot keyed by title
	Upsert(ctx context.Context, event domain.Event) error
}
