package app

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

type QueryService struct {
	store     domain.ReviewStore
	scorer    domain.SentimentScorer
	locations *domain.LocationRegistry
	workers   int
	endOfDay  bool
}

type QueryOption func(*QueryService)

// WithScoreWorkers bounds how many reviews are scored concurrently.
func WithScoreWorkers(n int) QueryOption {
	return func(s *QueryService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithEndOfDayInclusive makes end_date cover the whole day instead of
// stopping at its midnight.
func WithEndOfDayInclusive(on bool) QueryOption {
	return func(s *QueryService) { s.endOfDay = on }
}

func NewQueryService(st domain.ReviewStore, sc domain.SentimentScorer, locs *domain.LocationRegistry, opts ...QueryOption) *QueryService {
	s := &QueryService{store: st, scorer: sc, locations: locs, workers: runtime.GOMAXPROCS(0)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DateError reports which date parameter failed to parse.
type DateError struct {
	Param string
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%v: %s %q, expected YYYY-MM-DD", domain.ErrInvalidDateFormat, e.Param, e.Value)
}

func (e *DateError) Unwrap() error { return domain.ErrInvalidDateFormat }

// ParseFilter decodes the optional location and YYYY-MM-DD bounds of a query.
func ParseFilter(location, startDate, endDate string) (domain.ReviewFilter, error) {
	f := domain.ReviewFilter{Location: location}
	if startDate != "" {
		d, err := domain.ParseDate(startDate)
		if err != nil {
			return domain.ReviewFilter{}, &DateError{Param: "start_date", Value: startDate}
		}
		f.Start = &d
	}
	if endDate != "" {
		d, err := domain.ParseDate(endDate)
		if err != nil {
			return domain.ReviewFilter{}, &DateError{Param: "end_date", Value: endDate}
		}
		f.End = &d
	}
	return f, nil
}

// Query filters the store, scores every match and returns them sorted by
// compound score, highest first. Equal scores keep insertion order.
func (s *QueryService) Query(ctx context.Context, f domain.ReviewFilter) ([]domain.ScoredReview, error) {
	if f.Location != "" && !s.locations.IsValid(f.Location) {
		return nil, domain.ErrInvalidLocation
	}

	var end time.Time
	if f.End != nil {
		end = *f.End
		if s.endOfDay {
			end = end.Add(24*time.Hour - time.Second)
		}
	}

	var out []domain.ScoredReview
	for r := range s.store.All() {
		if f.Location != "" && r.Location != f.Location {
			continue
		}
		if f.Start != nil && r.Timestamp.Before(*f.Start) {
			continue
		}
		if f.End != nil && r.Timestamp.After(end) {
			continue
		}
		out = append(out, domain.ScoredReview{Review: r})
	}

	start := time.Now()
	if err := s.scoreAll(ctx, out); err != nil {
		return nil, fmt.Errorf("score reviews: %w", err)
	}
	scoring := time.Since(start)

	slices.SortStableFunc(out, func(a, b domain.ScoredReview) int {
		return cmp.Compare(b.Sentiment.Compound, a.Sentiment.Compound)
	})
	observability.ObserveQuery(len(out), scoring)
	return out, nil
}

// scoreAll fills Sentiment in place; each goroutine owns one index.
func (s *QueryService) scoreAll(ctx context.Context, rs []domain.ScoredReview) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range rs {
		g.Go(func() error {
			sent, err := s.scorer.Score(gctx, rs[i].Body)
			if err != nil {
				return err
			}
			rs[i].Sentiment = sent
			return nil
		})
	}
	return g.Wait()
}
