package sentiment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/sentiment"
)

// ---- fakes ----

type countingScorer struct {
	calls int
	out   domain.Sentiment
	err   error
}

func (c *countingScorer) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	c.calls++
	return c.out, c.err
}

type fakeCache struct {
	store  map[string]domain.Sentiment
	getErr error
	setErr error
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*dst.(*domain.Sentiment) = v
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.setErr != nil {
		return c.setErr
	}
	if c.store == nil {
		c.store = map[string]domain.Sentiment{}
	}
	c.store[key] = v.(domain.Sentiment)
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error { delete(c.store, key); return nil }

// ---- tests ----

func TestCached_MissThenHit(t *testing.T) {
	inner := &countingScorer{out: domain.Sentiment{Pos: 1, Compound: 0.5}}
	cache := &fakeCache{}
	c := sentiment.NewCached(inner, cache, "test", time.Minute)

	for i := 0; i < 3; i++ {
		s, err := c.Score(context.Background(), "Great coffee")
		require.NoError(t, err)
		assert.Equal(t, 0.5, s.Compound)
	}
	assert.Equal(t, 1, inner.calls)
	assert.Len(t, cache.store, 1)
}

func TestCached_DistinctTextsDistinctKeys(t *testing.T) {
	inner := &countingScorer{}
	cache := &fakeCache{}
	c := sentiment.NewCached(inner, cache, "test", time.Minute)

	_, _ = c.Score(context.Background(), "one")
	_, _ = c.Score(context.Background(), "two")
	assert.Equal(t, 2, inner.calls)
	assert.Len(t, cache.store, 2)
}

func TestCached_CacheFailureFallsThrough(t *testing.T) {
	inner := &countingScorer{out: domain.Sentiment{Neu: 1}}
	cache := &fakeCache{getErr: errors.New("down"), setErr: errors.New("down")}
	c := sentiment.NewCached(inner, cache, "test", time.Minute)

	s, err := c.Score(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, domain.NeutralSentiment, s)
	assert.Equal(t, 1, inner.calls)
}

func TestCached_InnerErrorIsNotCached(t *testing.T) {
	inner := &countingScorer{err: errors.New("model unavailable")}
	cache := &fakeCache{}
	c := sentiment.NewCached(inner, cache, "test", time.Minute)

	_, err := c.Score(context.Background(), "text")
	require.Error(t, err)
	assert.Empty(t, cache.store)
}

func TestCached_WrapsVaderWithoutChangingResults(t *testing.T) {
	sc := sentiment.NewVader()
	c := sentiment.NewCached(sc, &fakeCache{}, sc.Model(), time.Minute)

	for _, text := range []string{"Great coffee", "awful wait", ""} {
		want, _ := sc.Score(context.Background(), text)
		got, err := c.Score(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		got, _ = c.Score(context.Background(), text)
		assert.Equal(t, want, got)
	}
}
