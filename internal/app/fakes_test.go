package app_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/storage/memory"
)

// ---- fakes ----

// tableScorer returns the compound registered for a text, 0 otherwise.
type tableScorer struct {
	compound map[string]float64
	fail     map[string]bool
	calls    atomic.Int64
}

func (s *tableScorer) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	s.calls.Add(1)
	if s.fail[text] {
		return domain.Sentiment{}, errors.New("scorer exploded")
	}
	c := s.compound[text]
	switch {
	case c > 0:
		return domain.Sentiment{Pos: 1, Compound: c}, nil
	case c < 0:
		return domain.Sentiment{Neg: 1, Compound: c}, nil
	}
	return domain.NeutralSentiment, nil
}

type failingStore struct{ *memory.Store }

func (failingStore) Append(domain.Review) error { return errors.New("disk on fire") }

type sliceSource struct {
	recs []domain.ReviewRecord
	err  error
}

func (s sliceSource) LoadReviews(ctx context.Context) ([]domain.ReviewRecord, error) {
	return s.recs, s.err
}

// ---- helpers ----

const (
	denver  = "Denver, Colorado"
	phoenix = "Phoenix, Arizona"
)

func registry() *domain.LocationRegistry {
	return domain.NewLocationRegistry(domain.DefaultLocations...)
}

func at(s string) time.Time {
	t, err := domain.ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedStore(reviews ...domain.Review) *memory.Store {
	st := memory.New()
	for _, r := range reviews {
		if err := st.Append(r); err != nil {
			panic(err)
		}
	}
	return st
}

func ids(rs []domain.ScoredReview) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
