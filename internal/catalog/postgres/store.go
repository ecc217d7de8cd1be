package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staypulse/pricingservice/internal/domain"
)

// Store is the PostgreSQL implementation of the catalog repositories.
//
// Schema:
//
//	lodging_units(name text primary key)
//	room_rates(unit_name text, room_type text, rate_date date, base_price numeric)
//	events(title text primary key, event_date date, date_start date, date_end date,
//	       venue text, event_type text, genre text, headline_artist text,
//	       status text, ticket_prices jsonb, free_admission bool)
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new PostgreSQL store
func NewStore(ctx context.Context, connString string, maxConns int32) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if maxConns > 0 {
		config.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: pool}, nil
}

// NewStoreWithPool creates a store from an existing pool
func NewStoreWithPool(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("database pool cannot be nil")
	}
	return &Store{db: pool}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// GetByName retrieves a lodging unit with all its room rates
func (s *Store) GetByName(ctx context.Context, name string) (domain.LodgingUnit, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM lodging_units WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return domain.LodgingUnit{}, fmt.Errorf("failed to query lodging unit: %w", err)
	}
	if !exists {
		return domain.LodgingUnit{}, domain.NewNotFoundError("lodging unit", name)
	}
	return s.loadUnit(ctx, name)
}

// List retrieves every lodging unit with its room rates
func (s *Store) List(ctx context.Context) ([]domain.LodgingUnit, error) {
	rows, err := s.db.Query(ctx, `SELECT name FROM lodging_units ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list lodging units: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan unit name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lodging units: %w", err)
	}

	units := make([]domain.LodgingUnit, 0, len(names))
	for _, name := range names {
		unit, err := s.loadUnit(ctx, name)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}

func (s *Store) loadUnit(ctx context.Context, name string) (domain.LodgingUnit, error) {
	rows, err := s.db.Query(ctx,
		`SELECT room_type, to_char(rate_date, 'YYYY-MM-DD'), base_price
		 FROM room_rates
		 WHERE unit_name = $1
		 ORDER BY room_type, rate_date`, name)
	if err != nil {
		return domain.LodgingUnit{}, fmt.Errorf("failed to query room rates: %w", err)
	}
	defer rows.Close()

	unit := domain.LodgingUnit{Name: name}
	byType := map[string]int{}
	for rows.Next() {
		var (
			roomType string
			date     string
			price    float64
		)
		if err := rows.Scan(&roomType, &date, &price); err != nil {
			return domain.LodgingUnit{}, fmt.Errorf("failed to scan room rate: %w", err)
		}
		idx, ok := byType[roomType]
		if !ok {
			idx = len(unit.Rooms)
			byType[roomType] = idx
			unit.Rooms = append(unit.Rooms, domain.RoomCategory{Type: roomType})
		}
		unit.Rooms[idx].Prices = append(unit.Rooms[idx].Prices, domain.DatedPrice{
			Date:      date,
			BasePrice: price,
		})
	}
	if err := rows.Err(); err != nil {
		return domain.LodgingUnit{}, fmt.Errorf("failed to iterate room rates: %w", err)
	}
	return unit, nil
}

// Upsert stores a lodging unit snapshot and replaces its room rates
func (s *Store) Upsert(ctx context.Context, unit domain.LodgingUnit) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO lodging_units (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		unit.Name); err != nil {
		return fmt.Errorf("failed to upsert lodging unit: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM room_rates WHERE unit_name = $1`, unit.Name); err != nil {
		return fmt.Errorf("failed to clear room rates: %w", err)
	}
	for _, room := range unit.Rooms {
		for _, p := range room.Prices {
			if _, err := tx.Exec(ctx,
				`INSERT INTO room_rates (unit_name, room_type, rate_date, base_price)
				 VALUES ($1, $2, $3, $4)`,
				unit.Name, room.Type, p.Date, p.BasePrice); err != nil {
				return fmt.Errorf("failed to insert room rate: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// ListEvents retrieves every catalog event
func (s *Store) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.db.Query(ctx,
		`SELECT title,
		        COALESCE(to_char(event_date, 'YYYY-MM-DD'), ''),
		        COALESCE(to_char(date_start, 'YYYY-MM-DD'), ''),
		        COALESCE(to_char(date_end, 'YYYY-MM-DD'), ''),
		        COALESCE(venue, ''), COALESCE(event_type, ''),
		        COALESCE(genre, ''), COALESCE(headline_artist, ''),
		        COALESCE(status, ''), COALESCE(ticket_prices, '{}'::jsonb),
		        free_admission
		 FROM events
		 ORDER BY COALESCE(event_date, date_start), title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var (
			ev      domain.Event
			status  string
			tickets []byte
		)
		if err := rows.Scan(&ev.Title, &ev.Date, &ev.DateStart, &ev.DateEnd,
			&ev.Venue, &ev.EventType, &ev.Genre, &ev.HeadlineArtist,
			&status, &tickets, &ev.FreeAdmission); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Status = domain.EventStatus(status)
		if len(tickets) > 0 {
			if err := json.Unmarshal(tickets, &ev.TicketPrices); err != nil {
				return nil, fmt.Errorf("failed to unmarshal ticket prices for %q: %w", ev.Title, err)
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return out, nil
}

// UpsertEvent stores an event snapshot keyed by title
func (s *Store) UpsertEvent(ctx context.Context, event domain.Event) error {
	tickets, err := json.Marshal(event.TicketPrices)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket prices: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO events (title, event_date, date_start, date_end, venue,
		                     event_type, genre, headline_artist, status,
		                     ticket_prices, free_admission)
		 VALUES ($1, NULLIF($2, '')::date, NULLIF($3, '')::date, NULLIF($4, '')::date,
		         $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (title) DO UPDATE SET
		     event_date = EXCLUDED.event_date,
		     date_start = EXCLUDED.date_start,
		     date_end = EXCLUDED.date_end,
		     venue = EXCLUDED.venue,
		     event_type = EXCLUDED.event_type,
		     genre = EXCLUDED.genre,
		     headline_artist = EXCLUDED.headline_artist,
		     status = EXCLUDED.status,
		     ticket_prices = EXCLUDED.ticket_prices,
		     free_admission = EXCLUDED.free_admission`,
		event.Title, event.Date, event.DateStart, event.DateEnd, event.Venue,
		event.EventType, event.Genre, event.HeadlineArtist, string(event.Status),
		tickets, event.FreeAdmission)
	if err != nil {
		return fmt.Errorf("failed to upsert event: %w", err)
	}
	return nil
}

// EventStore adapts a Store to the catalog.EventRepository interface.
type EventStore struct {
	*Store
}

// NewEventStore wraps a Store as an event repository.
func NewEventStore(store *Store) *EventStore {
	return &EventStore{Store: store}
}

// List retrieves every catalog event
func (s *EventStore) List(ctx context.Context) ([]domain.Event, error) {
	return s.ListEvents(ctx)
}

// Upsert stores an event snapshot
func (s *EventStore) Upsert(ctx context.Context, event domain.Event) error {
	return s.UpsertEvent(ctx, event)
}

// IsNotFound reports whether an error is a pgx no-rows error
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
