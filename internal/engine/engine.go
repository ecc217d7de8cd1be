// Package engine implements the demand-driven rate adjustment engine:
// a deterministic, explainable scoring computation that turns a base
// nightly rate, a calendar date and an event catalog into an adjusted
// rate plus a breakdown of every multiplicative factor involved.
//
// Every entry point takes an explicit reference-now date instead of
// reading the system clock, so identical inputs always produce identical
// outputs.
package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/staypulse/pricingservice/internal/domain"
)

// Engine computes adjusted prices from a base price and a rule table.
type Engine struct {
	rules Rules
}

// New constructs an engine from a validated rule table. A malformed table
// fails construction; no computation ever revalidates rules per call.
func New(rules Rules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Engine{rules: rules}, nil
}

// Rules returns a copy of the engine's rule table.
func (e *Engine) Rules() Rules {
	return e.rules
}

// ComputeAdjustedPrice computes the event-driven adjustment for a single
// base price on a target date, without room or brand adjustment.
//
// mainEvent optionally overrides the primary driver; otherwise the first
// event overlapping the date is used. When nothing overlaps (and no
// override is given) the price passes through unchanged with a "no events"
// breakdown. The event-driven factor is capped at the configured maximum.
func (e *Engine) ComputeAdjustedPrice(basePrice float64, date string, events []domain.Event, mainEvent *domain.Event, referenceNow string) (domain.AdjustmentResult, error) {
	if basePrice <= 0 {
		return domain.AdjustmentResult{}, domain.NewInvalidInputError("base price must be positive",
			fmt.Sprintf("got %.2f", basePrice))
	}
	target, err := parseDate(date)
	if err != nil {
		return domain.AdjustmentResult{}, err
	}
	now, err := parseDate(referenceNow)
	if err != nil {
		return domain.AdjustmentResult{}, err
	}

	overlap := Overlapping(events, date)

	var primary domain.Event
	switch {
	case mainEvent != nil:
		primary = *mainEvent
	case len(overlap.Events) > 0:
		primary = overlap.Events[0]
	default:
		return passthroughResult(basePrice, date), nil
	}

	eventDate, err := parseDate(primary.StartDate())
	if err != nil {
		return domain.AdjustmentResult{}, domain.NewInvalidInputError("event has no parseable date", primary.Title)
	}

	// Demand tier is classified from the event's signals alone; a
	// cancellation dampens the factor in its own step below instead of
	// rewriting the tier, so the breakdown stays explainable.
	tier := e.classifyDemand(primary)
	tierFactor := e.rules.tierFactor(tier)
	anticipation := e.anticipationFactor(eventDate, now)
	weekendFactor, weekend := e.weekendFactor(target)

	factor := tierFactor * anticipation * weekendFactor

	overlapFactor := 1.0
	if overlap.Multiple {
		overlapFactor = e.rules.OverlapFactor
		factor *= overlapFactor
	}

	reasons := []string{fmt.Sprintf("%s impact: %s", tier, primary.Title)}
	if primary.IsCancelled() {
		factor *= e.rules.CancelledFactor
		reasons = append(reasons, "event cancelled")
	}
	if primary.FreeAdmission {
		factor *= e.rules.FreeAdmissionFactor
		reasons = append(reasons, "free admission")
	}
	if overlap.Multiple {
		reasons = append(reasons, fmt.Sprintf("%d simultaneous events", len(overlap.Events)))
	}

	if factor > e.rules.MaxEventFactor {
		factor = e.rules.MaxEventFactor
	}

	adjusted := round2(basePrice * factor)
	percent := round2((adjusted - basePrice) / basePrice * 100)

	return domain.AdjustmentResult{
		Date:            date,
		OriginalPrice:   basePrice,
		AdjustedPrice:   adjusted,
		PercentIncrease: percent,
		Breakdown: domain.Breakdown{
			Tier:               tier,
			TierFactor:         tierFactor,
			AnticipationFactor: anticipation,
			Weekend:            weekend,
			WeekendFactor:      weekendFactor,
			MultipleEvents:     overlap.Multiple,
			OverlapFactor:      overlapFactor,
			RoomFactor:         1,
			BrandFactor:        1,
			TotalFactor:        factor,
			EventTitle:         primary.Title,
			EventType:          primary.EventType,
			EventVenue:         primary.Venue,
			EventStatus:        primary.Status,
			Reason:             strings.Join(reasons, "; "),
		},
	}, nil
}

// passthroughResult is the adjustment for a date with no applicable events:
// the base price unchanged, all factors 1, breakdown still present.
func passthroughResult(basePrice float64, date string) domain.AdjustmentResult {
	return domain.AdjustmentResult{
		Date:            date,
		OriginalPrice:   basePrice,
		AdjustedPrice:   basePrice,
		PercentIncrease: 0,
		Breakdown: domain.Breakdown{
			Tier:               domain.ImpactTierLow,
			TierFactor:         1,
			AnticipationFactor: 1,
			WeekendFactor:      1,
			OverlapFactor:      1,
			RoomFactor:         1,
			BrandFactor:        1,
			TotalFactor:        1,
			Reason:             "no events",
		},
	}
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
