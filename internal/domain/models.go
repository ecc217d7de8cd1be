package domain

// DateLayout is the calendar-date format used across the service.
// Dates cross every boundary as plain YYYY-MM-DD strings; only the
// engine parses them.
const DateLayout = "2006-01-02"

// EventStatus represents the scheduling status of an event.
type EventStatus string

const (
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCancelled EventStatus = "cancelled"
)

// ImpactTier classifies an event's expected demand pull.
type ImpactTier string

const (
	ImpactTierHigh   ImpactTier = "high"
	ImpactTierMedium ImpactTier = "medium"
	ImpactTierLow    ImpactTier = "low"
)

// Event is an immutable snapshot of a scheduled event from the catalog.
// An event covers either a single Date or the inclusive DateStart..DateEnd
// range. TicketPrices maps tier names to displayed prices, which may be
// free text with currency symbols and thousands separators.
type Event struct {
	Title          string            `json:"title"`
	Date           string            `json:"date,omitempty"`
	DateStart      string            `json:"date_start,omitempty"`
	DateEnd        string            `json:"date_end,omitempty"`
	Venue          string            `json:"venue,omitempty"`
	EventType      string            `json:"event_type,omitempty"`
	Genre          string            `json:"genre,omitempty"`
	HeadlineArtist string            `json:"headline_artist,omitempty"`
	Status         EventStatus       `json:"status,omitempty"`
	TicketPrices   map[string]string `json:"ticket_prices,omitempty"`
	FreeAdmission  bool              `json:"free_admission,omitempty"`
}

// IsCancelled reports whether the event has been cancelled.
func (e Event) IsCancelled() bool {
	return e.Status == EventStatusCancelled
}

// StartDate returns the first calendar date the event covers.
func (e Event) StartDate() string {
	if e.Date != "" {
		return e.Date
	}
	return e.DateStart
}

// Covers reports whether the event takes place on the given date.
// Dates compare lexicographically, which is safe for YYYY-MM-DD strings.
func (e Event) Covers(date string) bool {
	if e.Date != "" {
		return e.Date == date
	}
	if e.DateStart != "" && e.DateEnd != "" {
		return e.DateStart <= date && date <= e.DateEnd
	}
	return false
}

// DatedPrice is a nightly base rate for a specific calendar date.
type DatedPrice struct {
	Date      string  `json:"date"`
	BasePrice float64 `json:"base_price"`
}

// RoomCategory is a free-text room type with its per-date base rates.
type RoomCategory struct {
	Type   string       `json:"type"`
	Prices []DatedPrice `json:"prices"`
}

// PriceOn returns the base rate for the given date, if one exists.
func (rc RoomCategory) PriceOn(date string) (float64, bool) {
	for _, p := range rc.Prices {
		if p.Date == date {
			return p.BasePrice, true
		}
	}
	return 0, false
}

// LodgingUnit is an immutable snapshot of a lodging property.
// Name doubles as the unique key and the brand label.
type LodgingUnit struct {
	Name  string         `json:"name"`
	Rooms []RoomCategory `json:"rooms"`
}

// Breakdown records every multiplicative contributor to an adjusted price.
// It is always populated, even when no event applies.
type Breakdown struct {
	Tier               ImpactTier  `json:"tier"`
	TierFactor         float64     `json:"tier_factor"`
	AnticipationFactor float64     `json:"anticipation_factor"`
	Weekend            bool        `json:"weekend"`
	WeekendFactor      float64     `json:"weekend_factor"`
	MultipleEvents     bool        `json:"multiple_events"`
	OverlapFactor      float64     `json:"overlap_factor"`
	RoomFactor         float64     `json:"room_factor"`
	BrandFactor        float64     `json:"brand_factor"`
	TotalFactor        float64     `json:"total_factor"`
	EventTitle         string      `json:"event_title,omitempty"`
	EventType          string      `json:"event_type,omitempty"`
	EventVenue         string      `json:"event_venue,omitempty"`
	EventStatus        EventStatus `json:"event_status,omitempty"`
	Reason             string      `json:"reason"`
}

// AdjustmentResult is the outcome of one price adjustment computation.
// Produced fresh per invocation, never persisted or mutated.
type AdjustmentResult struct {
	Unit            string    `json:"unit,omitempty"`
	RoomType        string    `json:"room_type,omitempty"`
	Date            string    `json:"date"`
	OriginalPrice   float64   `json:"original_price"`
	AdjustedPrice   float64   `json:"adjusted_price"`
	PercentIncrease float64   `json:"percent_increase"`
	Breakdown       Breakdown `json:"breakdown"`
}
