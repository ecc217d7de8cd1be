package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/staypulse/pricingservice/internal/domain"
)

// parseDate parses a YYYY-MM-DD calendar date.
func parseDate(date string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return time.Time{}, domain.NewInvalidInputError("invalid date", fmt.Sprintf("%q is not YYYY-MM-DD", date))
	}
	return t, nil
}

// anticipationFactor computes the multiplier for an event happening on
// eventDate, seen from referenceNow. The gap is taken in whole days,
// rounded up. Past events get no boost; neither do events beyond the
// largest configured threshold.
func (e *Engine) anticipationFactor(eventDate, referenceNow time.Time) float64 {
	days := int(math.Ceil(eventDate.Sub(referenceNow).Hours() / 24))
	if days < 0 {
		return 1
	}
	for _, tier := range e.rules.Anticipation {
		if days <= tier.MaxDays {
			return 1 + tier.Bonus
		}
	}
	return 1
}

// weekendFactor returns the weekend multiplier when date falls on a
// Friday, Saturday or Sunday, and 1 otherwise.
func (e *Engine) weekendFactor(date time.Time) (float64, bool) {
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return e.rules.WeekendFactor, true
	default:
		return 1, false
	}
}
