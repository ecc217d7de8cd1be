package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staypulse/pricingservice/internal/domain"
)

func TestMemoryStore_Units(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, domain.LodgingUnit{Name: "Hotel B"}))
	require.NoError(t, store.Upsert(ctx, domain.LodgingUnit{Name: "Hotel A"}))

	unit, err := store.GetByName(ctx, "Hotel A")
	require.NoError(t, err)
	assert.Equal(t, "Hotel A", unit.Name)

	_, err = store.GetByName(ctx, "Hotel C")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeNotFound))

	// Listing is sorted by name for deterministic batch iteration.
	units, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "Hotel A", units[0].Name)
	assert.Equal(t, "Hotel B", units[1].Name)
}

func TestMemoryStore_UnitValidation(t *testing.T) {
	store := NewMemoryStore()
	err := store.Upsert(context.Background(), domain.LodgingUnit{})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))
}

func TestMemoryStore_Events(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertEvent(ctx, domain.Event{Title: "Second", Date: "2025-07-16"}))
	require.NoError(t, store.UpsertEvent(ctx, domain.Event{Title: "First", Date: "2025-07-15"}))

	// Events list in insertion order, so the first catalog entry stays the
	// stable primary-driver choice.
	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Second", events[0].Title)
	assert.Equal(t, "First", events[1].Title)

	// Re-upserting replaces in place without reordering.
	require.NoError(t, store.UpsertEvent(ctx, domain.Event{Title: "Second", Date: "2025-07-17"}))
	events, err = store.ListEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-17", events[0].Date)
}

func TestMemoryStore_EventValidation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.UpsertEvent(ctx, domain.Event{Date: "2025-07-15"})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))

	// A range event needs both ends.
	err = store.UpsertEvent(ctx, domain.Event{Title: "Half Range", DateStart: "2025-07-15"})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))
}
