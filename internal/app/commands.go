package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

// SeedReport summarizes a bootstrap load.
type SeedReport struct {
	Loaded  int
	Skipped int
}

// SeedService fills the store from a bootstrap source at process start.
type SeedService struct {
	store     domain.ReviewStore
	locations *domain.LocationRegistry
}

func NewSeedService(st domain.ReviewStore, locs *domain.LocationRegistry) *SeedService {
	return &SeedService{store: st, locations: locs}
}

// Seed appends every valid row in source order. Bad rows are logged and
// skipped; only a failing source aborts the load.
func (s *SeedService) Seed(ctx context.Context, src domain.ReviewSource) (SeedReport, error) {
	recs, err := src.LoadReviews(ctx)
	if err != nil {
		return SeedReport{}, fmt.Errorf("load seed reviews: %w", err)
	}

	var rep SeedReport
	for i, rec := range recs {
		r, err := mapRecord(rec)
		if err == nil && !s.locations.IsValid(r.Location) {
			err = fmt.Errorf("%w: %q", domain.ErrInvalidLocation, r.Location)
		}
		if err == nil {
			err = s.store.Append(r)
		}
		if err != nil {
			rep.Skipped++
			log.Warn().Int("row", i+1).Str("id", rec.ReviewID).Err(err).Msg("seed row skipped")
			continue
		}
		rep.Loaded++
	}

	observability.SetStored(s.store.Len())
	log.Info().Int("loaded", rep.Loaded).Int("skipped", rep.Skipped).Msg("seed complete")
	return rep, nil
}

// PrepareImport normalizes rows for a seed table, dropping the ones Seed
// would skip (including repeated IDs, first one wins).
func PrepareImport(recs []domain.ReviewRecord, locs *domain.LocationRegistry) ([]domain.ReviewRecord, SeedReport) {
	out := make([]domain.ReviewRecord, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	var rep SeedReport
	for i, rec := range recs {
		r, err := mapRecord(rec)
		if err == nil && !locs.IsValid(r.Location) {
			err = fmt.Errorf("%w: %q", domain.ErrInvalidLocation, r.Location)
		}
		if _, dup := seen[r.ID]; err == nil && dup {
			err = fmt.Errorf("%w: %s", domain.ErrDuplicateID, r.ID)
		}
		if err != nil {
			rep.Skipped++
			log.Warn().Int("row", i+1).Str("id", rec.ReviewID).Err(err).Msg("import row skipped")
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, toRecord(r))
		rep.Loaded++
	}
	return out, rep
}
