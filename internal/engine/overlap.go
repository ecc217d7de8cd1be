package engine

import (
	"github.com/staypulse/pricingservice/internal/domain"
)

// Overlap is the set of catalog events taking place on a target date.
type Overlap struct {
	Events   []domain.Event
	Multiple bool
}

// Overlapping collects every event covering the target date, whether by a
// single-day date or an inclusive date range. Catalog order is preserved so
// the first overlapping event is a stable primary-driver choice.
func Overlapping(events []domain.Event, date string) Overlap {
	var matched []domain.Event
	for _, ev := range events {
		if ev.Covers(date) {
			matched = append(matched, ev)
		}
	}
	return Overlap{
		Events:   matched,
		Multiple: len(matched) > 1,
	}
}
