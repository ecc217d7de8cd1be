package engine

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/staypulse/pricingservice/internal/domain"
)

// AnticipationTier maps a days-until-event threshold to the bonus fraction
// applied when the event is at most MaxDays away. Tiers must be sorted by
// ascending MaxDays; the first tier whose MaxDays covers the gap wins.
type AnticipationTier struct {
	MaxDays int     `mapstructure:"max_days" json:"max_days"`
	Bonus   float64 `mapstructure:"bonus" json:"bonus"`
}

// Rules is the immutable rule table driving the adjustment engine.
// Construct once, validate once, inject everywhere. Keyword matching is
// case-insensitive substring containment; it is the documented adapter for
// free-text catalogs and should be replaced with explicit tags where the
// upstream catalog supports them.
type Rules struct {
	// Base factors per impact tier.
	HighTierFactor   float64 `mapstructure:"high_tier_factor"`
	MediumTierFactor float64 `mapstructure:"medium_tier_factor"`
	LowTierFactor    float64 `mapstructure:"low_tier_factor"`

	// Temporal factors.
	Anticipation  []AnticipationTier `mapstructure:"anticipation"`
	WeekendFactor float64            `mapstructure:"weekend_factor"`

	// Composition factors.
	OverlapFactor       float64 `mapstructure:"overlap_factor"`
	CancelledFactor     float64 `mapstructure:"cancelled_factor"`
	FreeAdmissionFactor float64 `mapstructure:"free_admission_factor"`
	MaxEventFactor      float64 `mapstructure:"max_event_factor"`

	// Classifier keyword lists and ticket-price thresholds.
	HighVenueKeywords     []string `mapstructure:"high_venue_keywords"`
	HighTypeKeywords      []string `mapstructure:"high_type_keywords"`
	HighArtistKeywords    []string `mapstructure:"high_artist_keywords"`
	MediumTypeKeywords    []string `mapstructure:"medium_type_keywords"`
	MediumGenreKeywords   []string `mapstructure:"medium_genre_keywords"`
	HighTicketThreshold   float64  `mapstructure:"high_ticket_threshold"`
	MediumTicketThreshold float64  `mapstructure:"medium_ticket_threshold"`

	// Secondary room/brand multipliers.
	PremiumRoomKeywords  []string `mapstructure:"premium_room_keywords"`
	BudgetRoomKeywords   []string `mapstructure:"budget_room_keywords"`
	PremiumBrandKeywords []string `mapstructure:"premium_brand_keywords"`
	PremiumRoomFactor    float64  `mapstructure:"premium_room_factor"`
	BudgetRoomFactor     float64  `mapstructure:"budget_room_factor"`
	PremiumBrandFactor   float64  `mapstructure:"premium_brand_factor"`

	// Batch limits.
	MaxBatchSize int `mapstructure:"max_batch_size"`
	Workers      int `mapstructure:"workers"`
}

// DefaultRules returns the compiled-in rule table.
func DefaultRules() Rules {
	return Rules{
		HighTierFactor:   1.4,
		MediumTierFactor: 1.25,
		LowTierFactor:    1.1,
		Anticipation: []AnticipationTier{
			{MaxDays: 1, Bonus: 0.20},
			{MaxDays: 3, Bonus: 0.15},
			{MaxDays: 7, Bonus: 0.10},
			{MaxDays: 15, Bonus: 0.05},
			{MaxDays: 30, Bonus: 0.02},
		},
		WeekendFactor:       1.15,
		OverlapFactor:       1.2,
		CancelledFactor:     0.95,
		FreeAdmissionFactor: 0.9,
		MaxEventFactor:      2.0,

		HighVenueKeywords:  []string{"cecut", "estadio", "arena", "palenque", "foro"},
		HighTypeKeywords:   []string{"festival", "feria", "expo"},
		HighArtistKeywords: []string{"bad bunny", "luis miguel", "coldplay", "grupo firme"},
		MediumTypeKeywords: []string{"concierto", "concert", "teatro", "obra", "exposición"},
		MediumGenreKeywords: []string{"rock", "pop", "banda", "regional", "electrónica"},
		HighTicketThreshold:   1500,
		MediumTicketThreshold: 800,

		PremiumRoomKeywords:  []string{"suite", "vip", "presidential", "master"},
		BudgetRoomKeywords:   []string{"standard", "single", "economy", "sencilla"},
		PremiumBrandKeywords: []string{"grand", "lucerna", "marriott", "real inn"},
		PremiumRoomFactor:    1.10,
		BudgetRoomFactor:     0.95,
		PremiumBrandFactor:   1.05,

		MaxBatchSize: 10000,
		Workers:      8,
	}
}

// Validate checks the rule table for internal consistency. A failing table
// must prevent engine construction.
func (r Rules) Validate() error {
	for name, f := range map[string]float64{
		"high_tier_factor":      r.HighTierFactor,
		"medium_tier_factor":    r.MediumTierFactor,
		"low_tier_factor":       r.LowTierFactor,
		"weekend_factor":        r.WeekendFactor,
		"overlap_factor":        r.OverlapFactor,
		"cancelled_factor":      r.CancelledFactor,
		"free_admission_factor": r.FreeAdmissionFactor,
		"max_event_factor":      r.MaxEventFactor,
		"premium_room_factor":   r.PremiumRoomFactor,
		"budget_room_factor":    r.BudgetRoomFactor,
		"premium_brand_factor":  r.PremiumBrandFactor,
	} {
		if f <= 0 {
			return domain.NewConfigurationError("multiplier must be positive", name)
		}
	}

	if len(r.Anticipation) == 0 {
		return domain.NewConfigurationError("anticipation table is empty", "")
	}
	prev := 0
	for i, tier := range r.Anticipation {
		if tier.MaxDays <= prev {
			return domain.NewConfigurationError("anticipation table not sorted ascending",
				fmt.Sprintf("index %d: max_days %d after %d", i, tier.MaxDays, prev))
		}
		if tier.Bonus < 0 {
			return domain.NewConfigurationError("anticipation bonus is negative",
				fmt.Sprintf("index %d", i))
		}
		prev = tier.MaxDays
	}

	if r.HighTicketThreshold <= 0 || r.MediumTicketThreshold <= 0 {
		return domain.NewConfigurationError("ticket thresholds must be positive", "")
	}
	if r.MediumTicketThreshold > r.HighTicketThreshold {
		return domain.NewConfigurationError("medium ticket threshold exceeds high threshold",
			fmt.Sprintf("medium %.2f > high %.2f", r.MediumTicketThreshold, r.HighTicketThreshold))
	}

	if r.MaxBatchSize <= 0 {
		return domain.NewConfigurationError("max_batch_size must be positive", "")
	}
	if r.Workers <= 0 {
		return domain.NewConfigurationError("workers must be positive", "")
	}
	return nil
}

// tierFactor looks up the base multiplier for an impact tier.
func (r Rules) tierFactor(tier domain.ImpactTier) float64 {
	switch tier {
	case domain.ImpactTierHigh:
		return r.HighTierFactor
	case domain.ImpactTierMedium:
		return r.MediumTierFactor
	default:
		return r.LowTierFactor
	}
}

// LoadRules reads a rule table from a YAML file, overlaying the defaults.
// An empty path returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}
	if err := v.Unmarshal(&rules); err != nil {
		return Rules{}, fmt.Errorf("failed to unmarshal rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}
