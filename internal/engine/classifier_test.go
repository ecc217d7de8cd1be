package engine

import (
	"testing"

	"github.com/staypulse/pricingservice/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultRules())
	if err != nil {
		t.Fatalf("failed to construct engine: %v", err)
	}
	return e
}

func TestClassifyImpact(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name  string
		event domain.Event
		want  domain.ImpactTier
	}{
		{
			name:  "cancelled overrides every other signal",
			event: domain.Event{Title: "Big Show", Venue: "Estadio Caliente", Status: domain.EventStatusCancelled},
			want:  domain.ImpactTierLow,
		},
		{
			name:  "major venue keyword",
			event: domain.Event{Title: "Noche de Jazz", Venue: "CECUT Sala Principal"},
			want:  domain.ImpactTierHigh,
		},
		{
			name:  "high impact event type",
			event: domain.Event{Title: "Baja Beach Fest", EventType: "Festival"},
			want:  domain.ImpactTierHigh,
		},
		{
			name:  "prestige headline artist",
			event: domain.Event{Title: "Gira 2025", HeadlineArtist: "Luis Miguel"},
			want:  domain.ImpactTierHigh,
		},
		{
			name: "ticket price above high threshold with currency formatting",
			event: domain.Event{
				Title:        "Gala",
				TicketPrices: map[string]string{"VIP": "MX$2,500.00", "General": "$600"},
			},
			want: domain.ImpactTierHigh,
		},
		{
			name:  "medium event type",
			event: domain.Event{Title: "Obra local", EventType: "Teatro"},
			want:  domain.ImpactTierMedium,
		},
		{
			name:  "medium genre",
			event: domain.Event{Title: "Tributo", Genre: "Rock"},
			want:  domain.ImpactTierMedium,
		},
		{
			name: "ticket price between thresholds",
			event: domain.Event{
				Title:        "Showcase",
				TicketPrices: map[string]string{"General": "950 pesos"},
			},
			want: domain.ImpactTierMedium,
		},
		{
			name: "malformed ticket prices are ignored",
			event: domain.Event{
				Title:        "Open Mic",
				TicketPrices: map[string]string{"Entrada": "gratis", "Otro": "n/a"},
			},
			want: domain.ImpactTierLow,
		},
		{
			name:  "no signals at all",
			event: domain.Event{Title: "Reunion vecinal"},
			want:  domain.ImpactTierLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ClassifyImpact(tt.event); got != tt.want {
				t.Errorf("ClassifyImpact() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTicketPrice(t *testing.T) {
	tests := []struct {
		display string
		want    float64
		ok      bool
	}{
		{"MX$1,500.00", 1500, true},
		{"$600", 600, true},
		{"desde 800 pesos", 800, true},
		{"1.200", 1.200, true}, // dot is kept as a decimal separator
		{"gratis", 0, false},
		{"", 0, false},
		{"...", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseTicketPrice(tt.display)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseTicketPrice(%q) = (%v, %v), want (%v, %v)", tt.display, got, ok, tt.want, tt.ok)
		}
	}
}
