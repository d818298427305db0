package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

// Submission is a decoded POST body.
type Submission struct {
	Body     string `validate:"required"`
	Location string `validate:"required"`
}

type SubmissionService struct {
	store     domain.ReviewStore
	scorer    domain.SentimentScorer
	locations *domain.LocationRegistry
	clock     clockwork.Clock
	newID     func() string
	validate  *validator.Validate
}

func NewSubmissionService(st domain.ReviewStore, sc domain.SentimentScorer, locs *domain.LocationRegistry, clock clockwork.Clock) *SubmissionService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SubmissionService{
		store:     st,
		scorer:    sc,
		locations: locs,
		clock:     clock,
		newID:     uuid.NewString,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// WithIDGenerator replaces the UUID generator (tests, deterministic replays).
func (s *SubmissionService) WithIDGenerator(f func() string) *SubmissionService {
	s.newID = f
	return s
}

// Submit validates and stores a new review. Nothing is stored unless every
// step succeeds.
func (s *SubmissionService) Submit(ctx context.Context, sub Submission) (domain.ScoredReview, error) {
	if err := s.validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			observability.ObserveSubmission("missing_field")
			return domain.ScoredReview{}, fmt.Errorf("%w: %s", domain.ErrMissingField, verrs[0].Field())
		}
		return domain.ScoredReview{}, err
	}
	if !s.locations.IsValid(sub.Location) {
		observability.ObserveSubmission("invalid_location")
		return domain.ScoredReview{}, domain.ErrInvalidLocation
	}

	sent, err := s.scorer.Score(ctx, sub.Body)
	if err != nil {
		observability.ObserveSubmission("internal")
		return domain.ScoredReview{}, fmt.Errorf("score submission: %w", err)
	}

	r := domain.Review{
		ID:        s.newID(),
		Body:      sub.Body,
		Location:  sub.Location,
		Timestamp: s.clock.Now().UTC().Truncate(time.Second),
	}
	if err := s.store.Append(r); err != nil {
		observability.ObserveSubmission("internal")
		return domain.ScoredReview{}, fmt.Errorf("store review: %w", err)
	}
	observability.ObserveSubmission("created")
	observability.SetStored(s.store.Len())

	log.Info().
		Str("id", r.ID).
		Str("location", r.Location).
		Float64("compound", sent.Compound).
		Msg("review submitted")
	return domain.ScoredReview{Review: r, Sentiment: sent}, nil
}
