package engine

import (
	"fmt"
	"sync"

	"github.com/staypulse/pricingservice/internal/domain"
)

// batchJob is one tuple of the unit x room x date cross product, tagged
// with its position in the canonical iteration order.
type batchJob struct {
	idx       int
	unit      string
	roomType  string
	date      string
	basePrice float64
}

// ComputeBatchAdjustments runs the full adjustment (composition plus room
// and brand multipliers) over every lodging unit, room category and
// requested date. Tuples without a base price for the date are skipped;
// any invalid input aborts the whole batch, since it signals a
// data-integrity bug in the catalog.
//
// The per-tuple work is independent, so the cross product is spread over a
// worker pool. Each job carries its originating index and writes into a
// preallocated slot, so the returned list is always in canonical
// unit -> room -> date order regardless of scheduling.
func (e *Engine) ComputeBatchAdjustments(units []domain.LodgingUnit, events []domain.Event, dates []string, referenceNow string) ([]domain.AdjustmentResult, error) {
	size := 0
	for _, unit := range units {
		size += len(unit.Rooms) * len(dates)
	}
	if size > e.rules.MaxBatchSize {
		return nil, domain.NewBatchLimitExceededError(size, e.rules.MaxBatchSize)
	}

	var jobs []batchJob
	for _, unit := range units {
		for _, room := range unit.Rooms {
			for _, date := range dates {
				basePrice, ok := room.PriceOn(date)
				if !ok {
					// MissingPrice: expected, the tuple just drops out.
					continue
				}
				jobs = append(jobs, batchJob{
					idx:       len(jobs),
					unit:      unit.Name,
					roomType:  room.Type,
					date:      date,
					basePrice: basePrice,
				})
			}
		}
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	workers := e.rules.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]domain.AdjustmentResult, len(jobs))
	jobCh := make(chan batchJob)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				core, err := e.ComputeAdjustedPrice(job.basePrice, job.date, events, nil, referenceNow)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				results[job.idx] = e.ApplyCategoryAdjustment(core, job.roomType, job.unit)
			}
		}()
	}
	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("batch aborted: %w", firstErr)
	}
	return results, nil
}
