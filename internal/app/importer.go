package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_analyzer/internal/domain"
)

// SeedSink is a writable seed table (see storage/mysql).
type SeedSink interface {
	UpsertReviews(ctx context.Context, offset int, rs []domain.ReviewRecord) error
}

// ImportService copies prepared rows into a SeedSink in fixed-size batches,
// at most `workers` batches in flight.
type ImportService struct {
	sink    SeedSink
	batch   int
	workers int64
}

func NewImportService(sink SeedSink, batch, workers int) *ImportService {
	if batch <= 0 {
		batch = 500
	}
	if workers <= 0 {
		workers = 1
	}
	return &ImportService{sink: sink, batch: batch, workers: int64(workers)}
}

// Import returns the number of rows written and the first batch error.
// Failed batches do not stop the others.
func (s *ImportService) Import(ctx context.Context, recs []domain.ReviewRecord) (int, error) {
	sem := semaphore.NewWeighted(s.workers)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		written  int
		firstErr error
	)

	for off := 0; off < len(recs); off += s.batch {
		end := min(off+s.batch, len(recs))

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return written, err
		}

		wg.Add(1)
		go func(off int, rows []domain.ReviewRecord) {
			defer wg.Done()
			defer sem.Release(1)

			err := s.sink.UpsertReviews(ctx, off, rows)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn().Int("offset", off).Int("rows", len(rows)).Err(err).Msg("import batch failed")
				if firstErr == nil {
					firstErr = fmt.Errorf("batch at %d: %w", off, err)
				}
				return
			}
			written += len(rows)
			log.Info().Int("offset", off).Int("rows", len(rows)).Msg("import batch ok")
		}(off, recs[off:end])
	}

	wg.Wait()
	return written, firstErr
}
