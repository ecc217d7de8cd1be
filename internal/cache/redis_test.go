package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staypulse/pricingservice/internal/domain"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, 2*time.Minute)
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	stored := []domain.AdjustmentResult{
		{
			Unit:            "Grand Hotel Tijuana",
			RoomType:        "Suite",
			Date:            "2025-07-15",
			OriginalPrice:   2400,
			AdjustedPrice:   3528,
			PercentIncrease: 47,
			Breakdown:       domain.Breakdown{Tier: domain.ImpactTierHigh, Reason: "high impact: Test Concert"},
		},
	}

	require.NoError(t, c.Set(ctx, "adj:test", stored))

	var loaded []domain.AdjustmentResult
	require.NoError(t, c.Get(ctx, "adj:test", &loaded))
	assert.Equal(t, stored, loaded)
}

func TestCache_GetMissing(t *testing.T) {
	c := newTestCache(t)

	var dest []domain.AdjustmentResult
	err := c.Get(context.Background(), "adj:absent", &dest)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "adj:gone", "value"))
	require.NoError(t, c.Delete(ctx, "adj:gone"))

	var dest string
	assert.ErrorIs(t, c.Get(ctx, "adj:gone", &dest), ErrNotFound)
}

func TestBatchKey_Stable(t *testing.T) {
	type req struct {
		Units        []string `json:"units"`
		Dates        []string `json:"dates"`
		ReferenceNow string   `json:"reference_now"`
	}

	a, err := BatchKey(req{Units: []string{"A"}, Dates: []string{"2025-07-15"}, ReferenceNow: "2025-07-01"})
	require.NoError(t, err)
	b, err := BatchKey(req{Units: []string{"A"}, Dates: []string{"2025-07-15"}, ReferenceNow: "2025-07-01"})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// A different reference-now must never reuse a cached entry.
	c, err := BatchKey(req{Units: []string{"A"}, Dates: []string{"2025-07-15"}, ReferenceNow: "2025-07-02"})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
