package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/staypulse/pricingservice/internal/cache"
	"github.com/staypulse/pricingservice/internal/catalog"
	"github.com/staypulse/pricingservice/internal/domain"
	"github.com/staypulse/pricingservice/internal/engine"
	"github.com/staypulse/pricingservice/internal/events"
	"github.com/staypulse/pricingservice/internal/log"
	"github.com/staypulse/pricingservice/internal/metrics"
	"github.com/staypulse/pricingservice/internal/tracing"
)

// QuoteRequest asks for a single event-driven adjustment, without room or
// brand multipliers. Events defaults to the full catalog when omitted.
type QuoteRequest struct {
	BasePrice    float64        `json:"base_price"`
	Date         string         `json:"date"`
	ReferenceNow string         `json:"reference_now"`
	MainEvent    *domain.Event  `json:"main_event,omitempty"`
	Events       []domain.Event `json:"events,omitempty"`
}

// BatchRequest asks for the full adjustment over units x rooms x dates.
// An empty Units list means every unit in the catalog.
type BatchRequest struct {
	Units        []string `json:"units,omitempty"`
	Dates        []string `json:"dates"`
	ReferenceNow string   `json:"reference_now"`
}

// PricingService orchestrates the adjustment engine against the catalogs,
// the result cache and the event publisher. The engine stays pure; all I/O
// lives here.
type PricingService struct {
	engine    *engine.Engine
	units     catalog.UnitRepository
	events    catalog.EventRepository
	cache     *cache.Cache
	publisher events.Publisher
}

// NewPricingService wires a pricing service. cache may be nil (no caching);
// publisher may be nil (no events emitted).
func NewPricingService(eng *engine.Engine, units catalog.UnitRepository, eventRepo catalog.EventRepository, resultCache *cache.Cache, publisher events.Publisher) *PricingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &PricingService{
		engine:    eng,
		units:     units,
		events:    eventRepo,
		cache:     resultCache,
		publisher: publisher,
	}
}

// Quote computes a single adjustment against the event catalog.
func (s *PricingService) Quote(ctx context.Context, req QuoteRequest) (domain.AdjustmentResult, error) {
	ctx, span := tracing.Start(ctx, "PricingService.Quote")
	defer span.End()
	span.SetAttributes(
		attribute.String("date", req.Date),
		attribute.String("reference_now", req.ReferenceNow),
	)

	catalogEvents := req.Events
	if catalogEvents == nil {
		var err error
		catalogEvents, err = s.events.List(ctx)
		if err != nil {
			return domain.AdjustmentResult{}, fmt.Errorf("failed to load event catalog: %w", err)
		}
	}

	res, err := s.engine.ComputeAdjustedPrice(req.BasePrice, req.Date, catalogEvents, req.MainEvent, req.ReferenceNow)
	if err != nil {
		return domain.AdjustmentResult{}, err
	}

	metrics.AdjustmentsComputed.WithLabelValues(string(res.Breakdown.Tier)).Inc()
	metrics.AdjustmentFactor.Observe(res.Breakdown.TotalFactor)
	return res, nil
}

// Batch computes the full adjustment list for the requested units and dates.
// Identical requests are served from the cache when one is configured. The
// cache key covers the request but not catalog state, so cached results may
// trail a catalog upsert by up to the cache TTL.
func (s *PricingService) Batch(ctx context.Context, req BatchRequest) ([]domain.AdjustmentResult, error) {
	ctx, span := tracing.Start(ctx, "PricingService.Batch")
	defer span.End()
	span.SetAttributes(
		attribute.Int("units", len(req.Units)),
		attribute.Int("dates", len(req.Dates)),
		attribute.String("reference_now", req.ReferenceNow),
	)

	if len(req.Dates) == 0 {
		return nil, domain.NewInvalidInputError("at least one date is required", "")
	}
	if req.ReferenceNow == "" {
		return nil, domain.NewInvalidInputError("reference_now is required", "")
	}

	var cacheKey string
	if s.cache != nil {
		key, err := cache.BatchKey(req)
		if err == nil {
			cacheKey = key
			var cached []domain.AdjustmentResult
			if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
				metrics.CacheHit.Inc()
				return cached, nil
			} else if !errors.Is(err, cache.ErrNotFound) {
				log.Warn(ctx, "Adjustment cache read failed", zap.Error(err))
			}
			metrics.CacheMiss.Inc()
		}
	}

	units, err := s.resolveUnits(ctx, req.Units)
	if err != nil {
		return nil, err
	}
	catalogEvents, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load event catalog: %w", err)
	}

	start := time.Now()
	results, err := s.engine.ComputeBatchAdjustments(units, catalogEvents, req.Dates, req.ReferenceNow)
	if err != nil {
		return nil, err
	}
	metrics.BatchDuration.Observe(time.Since(start).Seconds())
	metrics.BatchSize.Observe(float64(len(results)))
	for _, res := range results {
		metrics.AdjustmentsComputed.WithLabelValues(string(res.Breakdown.Tier)).Inc()
		metrics.AdjustmentFactor.Observe(res.Breakdown.TotalFactor)
	}

	if s.cache != nil && cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, results); err != nil {
			log.Warn(ctx, "Adjustment cache write failed", zap.Error(err))
		}
	}

	s.publishBatch(ctx, req, results)

	log.Info(ctx, "Batch adjustment computed",
		zap.Int("units", len(units)),
		zap.Int("dates", len(req.Dates)),
		zap.Int("results", len(results)),
		zap.Duration("took", time.Since(start)))
	return results, nil
}

// resolveUnits loads the requested lodging units, or all of them when no
// names were given. An unknown name is a NotFound error for the batch.
func (s *PricingService) resolveUnits(ctx context.Context, names []string) ([]domain.LodgingUnit, error) {
	if len(names) == 0 {
		units, err := s.units.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load lodging units: %w", err)
		}
		return units, nil
	}
	units := make([]domain.LodgingUnit, 0, len(names))
	for _, name := range names {
		unit, err := s.units.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}

// publishBatch emits one summary event per batch; a publish failure is
// logged but never fails the computation.
func (s *PricingService) publishBatch(ctx context.Context, req BatchRequest, results []domain.AdjustmentResult) {
	if len(results) == 0 {
		return
	}
	aggregate := "catalog"
	if len(req.Units) == 1 {
		aggregate = req.Units[0]
	}
	event := events.NewEvent(events.TypeRateAdjusted, aggregate, map[string]interface{}{
		"reference_now": req.ReferenceNow,
		"dates":         req.Dates,
		"results":       len(results),
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn(ctx, "Failed to publish rate-adjusted event", zap.Error(err))
	}
}
