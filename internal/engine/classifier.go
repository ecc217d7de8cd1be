package engine

import (
	"strconv"
	"strings"

	"github.com/staypulse/pricingservice/internal/domain"
)

// ClassifyImpact assigns an impact tier to a single event.
// A cancelled event is always low impact, regardless of any other signal.
func (e *Engine) ClassifyImpact(event domain.Event) domain.ImpactTier {
	if event.IsCancelled() {
		return domain.ImpactTierLow
	}
	return e.classifyDemand(event)
}

// classifyDemand evaluates the demand signals only, ignoring event status.
// The composition step uses this directly so that a cancellation dampens the
// price instead of silently rewriting the tier (status handling is a
// separate, explicit step of the breakdown).
func (e *Engine) classifyDemand(event domain.Event) domain.ImpactTier {
	r := e.rules

	if containsAny(event.Venue, r.HighVenueKeywords) ||
		containsAny(event.EventType, r.HighTypeKeywords) ||
		containsAny(event.HeadlineArtist, r.HighArtistKeywords) ||
		maxTicketPrice(event.TicketPrices) >= r.HighTicketThreshold {
		return domain.ImpactTierHigh
	}

	if containsAny(event.EventType, r.MediumTypeKeywords) ||
		containsAny(event.Genre, r.MediumGenreKeywords) ||
		maxTicketPrice(event.TicketPrices) >= r.MediumTicketThreshold {
		return domain.ImpactTierMedium
	}

	return domain.ImpactTierLow
}

// containsAny reports whether text contains any keyword, case-insensitively.
func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// maxTicketPrice returns the highest parseable ticket price across tiers,
// or 0 when none parses.
func maxTicketPrice(tiers map[string]string) float64 {
	var max float64
	for _, display := range tiers {
		if price, ok := parseTicketPrice(display); ok && price > max {
			max = price
		}
	}
	return max
}

// parseTicketPrice extracts a numeric value from a displayed ticket price
// such as "MX$1,500.00" or "desde 800 pesos". Currency symbols and
// thousands separators are stripped; an unparseable string yields no value
// rather than an error.
func parseTicketPrice(display string) (float64, bool) {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	price, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}
