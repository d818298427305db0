package app_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/sentiment"
	"review_analyzer/internal/storage/memory"
)

var submitNow = time.Date(2024, 5, 6, 7, 8, 9, 123_000_000, time.UTC)

func newSubmitter(st domain.ReviewStore, sc domain.SentimentScorer) *app.SubmissionService {
	return app.NewSubmissionService(st, sc, registry(), clockwork.NewFakeClockAt(submitNow))
}

func TestSubmit_StoresReview(t *testing.T) {
	st := memory.New()
	s := newSubmitter(st, sentiment.NewVader())

	got, err := s.Submit(context.Background(), app.Submission{Body: "Great coffee", Location: denver})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Great coffee", got.Body)
	assert.Equal(t, denver, got.Location)
	assert.Equal(t, submitNow.Truncate(time.Second), got.Timestamp)
	assert.Greater(t, got.Sentiment.Compound, 0.0)
	assert.Equal(t, 1, st.Len())

	// retrievable by a later unfiltered query
	q := app.NewQueryService(st, sentiment.NewVader(), registry())
	out, err := q.Query(context.Background(), domain.ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, got.ID, out[0].ID)
	assert.Equal(t, got.Body, out[0].Body)
	assert.Equal(t, got.Location, out[0].Location)
}

func TestSubmit_AssignsFreshIDs(t *testing.T) {
	st := memory.New()
	s := newSubmitter(st, &tableScorer{})

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		got, err := s.Submit(context.Background(), app.Submission{Body: "ok", Location: phoenix})
		require.NoError(t, err)
		require.False(t, seen[got.ID])
		seen[got.ID] = true
	}
	assert.Equal(t, 50, st.Len())
}

func TestSubmit_TimestampFollowsClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(submitNow)
	st := memory.New()
	s := app.NewSubmissionService(st, &tableScorer{}, registry(), clock)

	first, err := s.Submit(context.Background(), app.Submission{Body: "one", Location: denver})
	require.NoError(t, err)
	clock.Advance(90 * time.Minute)
	second, err := s.Submit(context.Background(), app.Submission{Body: "two", Location: denver})
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, second.Timestamp.Sub(first.Timestamp))
	assert.Equal(t, "2024-05-06 08:38:09", domain.FormatTimestamp(second.Timestamp))
}

func TestSubmit_ValidationLeavesStoreUntouched(t *testing.T) {
	st := seedStore(domain.Review{ID: "seed", Body: "x", Location: denver, Timestamp: at("2024-01-01 10:00:00")})
	sc := &tableScorer{}
	s := newSubmitter(st, sc)

	for _, tc := range []struct {
		name string
		sub  app.Submission
		want error
	}{
		{"missing body", app.Submission{Location: denver}, domain.ErrMissingField},
		{"missing location", app.Submission{Body: "hello"}, domain.ErrMissingField},
		{"both missing", app.Submission{}, domain.ErrMissingField},
		{"unregistered location", app.Submission{Body: "hello", Location: "Gotham, New Jersey"}, domain.ErrInvalidLocation},
		{"wrong case", app.Submission{Body: "hello", Location: "DENVER, COLORADO"}, domain.ErrInvalidLocation},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Submit(context.Background(), tc.sub)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 1, st.Len())
		})
	}
	assert.Zero(t, sc.calls.Load(), "invalid submissions are never scored")
}

func TestSubmit_InternalFailuresStoreNothing(t *testing.T) {
	t.Run("scorer", func(t *testing.T) {
		st := memory.New()
		s := newSubmitter(st, &tableScorer{fail: map[string]bool{"boom": true}})

		_, err := s.Submit(context.Background(), app.Submission{Body: "boom", Location: denver})
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrMissingField)
		assert.Zero(t, st.Len())
	})

	t.Run("store", func(t *testing.T) {
		st := failingStore{memory.New()}
		s := newSubmitter(st, &tableScorer{})

		_, err := s.Submit(context.Background(), app.Submission{Body: "fine", Location: denver})
		require.ErrorContains(t, err, "disk on fire")
		assert.Zero(t, st.Len())
	})

	t.Run("id collision", func(t *testing.T) {
		st := memory.New()
		s := newSubmitter(st, &tableScorer{}).WithIDGenerator(func() string { return "fixed" })

		_, err := s.Submit(context.Background(), app.Submission{Body: "one", Location: denver})
		require.NoError(t, err)
		_, err = s.Submit(context.Background(), app.Submission{Body: "two", Location: denver})
		require.ErrorIs(t, err, domain.ErrDuplicateID)
		assert.Equal(t, 1, st.Len())
		assert.Equal(t, "one", slices.Collect(st.All())[0].Body)
	})
}
