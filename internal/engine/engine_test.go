package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staypulse/pricingservice/internal/domain"
)

// Tuesday 2025-07-15, seen from 2025-07-01, lands in the 15-day
// anticipation bucket. Used throughout the scenario tests.
const (
	targetDate   = "2025-07-15"
	referenceNow = "2025-07-01"
)

func confirmedConcert() domain.Event {
	return domain.Event{
		Title:     "Test Concert",
		Date:      targetDate,
		EventType: "concierto",
		Venue:     "CECUT",
		Status:    domain.EventStatusConfirmed,
	}
}

func TestComputeAdjustedPrice_HighImpactVenue(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.ComputeAdjustedPrice(1000, targetDate, []domain.Event{confirmedConcert()}, nil, referenceNow)
	require.NoError(t, err)

	// 1.4 (venue tier) x 1.05 (14 days out) x 1 (Tuesday) x 1 (single event)
	assert.Equal(t, domain.ImpactTierHigh, res.Breakdown.Tier)
	assert.Equal(t, 1.4, res.Breakdown.TierFactor)
	assert.Equal(t, 1.05, res.Breakdown.AnticipationFactor)
	assert.Equal(t, 1.0, res.Breakdown.WeekendFactor)
	assert.False(t, res.Breakdown.MultipleEvents)
	assert.Equal(t, 1470.00, res.AdjustedPrice)
	assert.Equal(t, 47.0, res.PercentIncrease)
	assert.Equal(t, "CECUT", res.Breakdown.EventVenue)
}

func TestComputeAdjustedPrice_CancelledDampening(t *testing.T) {
	e := newTestEngine(t)

	cancelled := confirmedConcert()
	cancelled.Status = domain.EventStatusCancelled

	res, err := e.ComputeAdjustedPrice(1000, targetDate, []domain.Event{cancelled}, nil, referenceNow)
	require.NoError(t, err)

	// Same factors as the confirmed case, dampened by 0.95.
	assert.Equal(t, 1396.50, res.AdjustedPrice)
	assert.Equal(t, 39.65, res.PercentIncrease)
	assert.Equal(t, domain.EventStatusCancelled, res.Breakdown.EventStatus)
	assert.Contains(t, res.Breakdown.Reason, "cancelled")

	confirmed, err := e.ComputeAdjustedPrice(1000, targetDate, []domain.Event{confirmedConcert()}, nil, referenceNow)
	require.NoError(t, err)
	assert.Less(t, res.AdjustedPrice, confirmed.AdjustedPrice,
		"a cancelled event must always price below the same event confirmed")
}

func TestComputeAdjustedPrice_NoEvents(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.ComputeAdjustedPrice(1000, "2025-09-02", []domain.Event{confirmedConcert()}, nil, referenceNow)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, res.AdjustedPrice)
	assert.Equal(t, 0.0, res.PercentIncrease)
	assert.Equal(t, "no events", res.Breakdown.Reason)
	assert.Equal(t, 1.0, res.Breakdown.TotalFactor)
}

func TestComputeAdjustedPrice_SimultaneousEvents(t *testing.T) {
	e := newTestEngine(t)

	second := domain.Event{
		Title:     "Expo Artesanal",
		DateStart: "2025-07-14",
		DateEnd:   "2025-07-16",
		EventType: "exposición",
		Status:    domain.EventStatusConfirmed,
	}

	res, err := e.ComputeAdjustedPrice(1000, targetDate, []domain.Event{confirmedConcert(), second}, nil, referenceNow)
	require.NoError(t, err)

	// Overlap factor 1.2 applied once on top of the primary event's factors.
	assert.True(t, res.Breakdown.MultipleEvents)
	assert.Equal(t, 1.2, res.Breakdown.OverlapFactor)
	assert.InDelta(t, 1.4*1.05*1.2, res.Breakdown.TotalFactor, 1e-9)
	assert.Equal(t, 1764.00, res.AdjustedPrice)
}

func TestComputeAdjustedPrice_FreeAdmissionDampening(t *testing.T) {
	e := newTestEngine(t)

	free := confirmedConcert()
	free.FreeAdmission = true

	res, err := e.ComputeAdjustedPrice(1000, targetDate, []domain.Event{free}, nil, referenceNow)
	require.NoError(t, err)

	assert.InDelta(t, 1.4*1.05*0.9, res.Breakdown.TotalFactor, 1e-9)
	assert.Contains(t, res.Breakdown.Reason, "free admission")
}

func TestComputeAdjustedPrice_FactorCap(t *testing.T) {
	e := newTestEngine(t)

	// Friday, event the next day, two overlapping events: the uncapped
	// product is 1.4 x 1.20 x 1.15 x 1.2 = 2.3184.
	events := []domain.Event{
		{Title: "Arena Show", Date: "2025-07-18", Venue: "Arena Tijuana", Status: domain.EventStatusConfirmed},
		{Title: "Street Fair", Date: "2025-07-18", Status: domain.EventStatusConfirmed},
	}
	res, err := e.ComputeAdjustedPrice(1000, "2025-07-18", events, nil, "2025-07-17")
	require.NoError(t, err)

	assert.Equal(t, 2.0, res.Breakdown.TotalFactor)
	assert.Equal(t, 2000.00, res.AdjustedPrice)
	assert.Equal(t, 100.0, res.PercentIncrease)
}

func TestComputeAdjustedPrice_MainEventOverride(t *testing.T) {
	e := newTestEngine(t)

	quiet := domain.Event{Title: "Lectura de poesía", Date: targetDate, Status: domain.EventStatusConfirmed}
	main := confirmedConcert()

	res, err := e.ComputeAdjustedPrice(1000, targetDate, []domain.Event{quiet, main}, &main, referenceNow)
	require.NoError(t, err)

	assert.Equal(t, "Test Concert", res.Breakdown.EventTitle)
	assert.Equal(t, domain.ImpactTierHigh, res.Breakdown.Tier)
}

func TestComputeAdjustedPrice_WeekendNeverPricesBelowWeekday(t *testing.T) {
	e := newTestEngine(t)

	event := domain.Event{
		Title:     "Recurrente",
		DateStart: "2025-07-14",
		DateEnd:   "2025-07-20",
		Genre:     "rock",
		Status:    domain.EventStatusConfirmed,
	}

	weekday, err := e.ComputeAdjustedPrice(1000, "2025-07-17", []domain.Event{event}, nil, referenceNow)
	require.NoError(t, err)
	weekend, err := e.ComputeAdjustedPrice(1000, "2025-07-18", []domain.Event{event}, nil, referenceNow)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, weekend.Breakdown.TotalFactor, weekday.Breakdown.TotalFactor)
}

func TestComputeAdjustedPrice_PastEventStillApplies(t *testing.T) {
	e := newTestEngine(t)

	// An event whose date already passed relative to reference-now stays a
	// full-strength primary driver; only the anticipation boost is gone.
	res, err := e.ComputeAdjustedPrice(1000, targetDate, []domain.Event{confirmedConcert()}, nil, "2025-08-01")
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.Breakdown.AnticipationFactor)
	assert.Equal(t, 1400.00, res.AdjustedPrice)
}

func TestComputeAdjustedPrice_InvalidInput(t *testing.T) {
	e := newTestEngine(t)
	events := []domain.Event{confirmedConcert()}

	_, err := e.ComputeAdjustedPrice(0, targetDate, events, nil, referenceNow)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))

	_, err = e.ComputeAdjustedPrice(-10, targetDate, events, nil, referenceNow)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))

	_, err = e.ComputeAdjustedPrice(1000, "15/07/2025", events, nil, referenceNow)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))

	_, err = e.ComputeAdjustedPrice(1000, targetDate, events, nil, "not-a-date")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))
}

func TestComputeAdjustedPrice_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	events := []domain.Event{confirmedConcert()}

	first, err := e.ComputeAdjustedPrice(1234.56, targetDate, events, nil, referenceNow)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := e.ComputeAdjustedPrice(1234.56, targetDate, events, nil, referenceNow)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeAdjustedPrice_PercentConsistency(t *testing.T) {
	e := newTestEngine(t)
	events := []domain.Event{confirmedConcert()}

	for _, base := range []float64{1, 99.99, 1000, 3456.78, 100000} {
		res, err := e.ComputeAdjustedPrice(base, targetDate, events, nil, referenceNow)
		require.NoError(t, err)
		recomputed := (res.AdjustedPrice/res.OriginalPrice - 1) * 100
		assert.InDelta(t, recomputed, res.PercentIncrease, 0.01)
	}
}

func TestApplyCategoryAdjustment(t *testing.T) {
	e := newTestEngine(t)

	core, err := e.ComputeAdjustedPrice(1000, targetDate, []domain.Event{confirmedConcert()}, nil, referenceNow)
	require.NoError(t, err)

	tests := []struct {
		name        string
		roomType    string
		unitName    string
		roomFactor  float64
		brandFactor float64
		price       float64
	}{
		{"premium room and brand", "Suite Master", "Grand Hotel Tijuana", 1.10, 1.05, 1697.85},
		{"budget room", "Standard Doble", "Hotel Central", 0.95, 1.0, 1396.50},
		{"neutral room", "Doble Vista Mar", "Hotel Central", 1.0, 1.0, 1470.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.ApplyCategoryAdjustment(core, tt.roomType, tt.unitName)
			assert.Equal(t, tt.roomFactor, res.Breakdown.RoomFactor)
			assert.Equal(t, tt.brandFactor, res.Breakdown.BrandFactor)
			assert.Equal(t, tt.price, res.AdjustedPrice)
			// Percent always reads against the original base price.
			assert.InDelta(t, (res.AdjustedPrice/1000-1)*100, res.PercentIncrease, 0.01)
			assert.Equal(t, tt.unitName, res.Unit)
			assert.Equal(t, tt.roomType, res.RoomType)
		})
	}
}

func TestNew_RejectsMalformedRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"unsorted anticipation table", func(r *Rules) {
			r.Anticipation = []AnticipationTier{{MaxDays: 7, Bonus: 0.1}, {MaxDays: 3, Bonus: 0.15}}
		}},
		{"negative anticipation bonus", func(r *Rules) {
			r.Anticipation = []AnticipationTier{{MaxDays: 7, Bonus: -0.1}}
		}},
		{"empty anticipation table", func(r *Rules) { r.Anticipation = nil }},
		{"non-positive multiplier", func(r *Rules) { r.WeekendFactor = 0 }},
		{"negative tier factor", func(r *Rules) { r.HighTierFactor = -1.4 }},
		{"inverted ticket thresholds", func(r *Rules) {
			r.MediumTicketThreshold = 2000
			r.HighTicketThreshold = 1000
		}},
		{"non-positive batch limit", func(r *Rules) { r.MaxBatchSize = 0 }},
		{"non-positive workers", func(r *Rules) { r.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)
			_, err := New(rules)
			require.Error(t, err)
			assert.True(t, domain.HasCode(err, domain.ErrCodeConfiguration))
		})
	}
}
