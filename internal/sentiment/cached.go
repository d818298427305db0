package sentiment

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog/log"

	"review_analyzer/internal/domain"
)

// Cached memoizes an inner scorer in a domain.Cache. Cache failures are
// logged and bypassed, so results are always those of the inner scorer.
type Cached struct {
	inner domain.SentimentScorer
	cache domain.Cache
	model string
	ttl   time.Duration
}

func NewCached(inner domain.SentimentScorer, cache domain.Cache, model string, ttl time.Duration) *Cached {
	return &Cached{inner: inner, cache: cache, model: model, ttl: ttl}
}

func (c *Cached) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	key := c.key(text)

	var s domain.Sentiment
	ok, err := c.cache.Get(ctx, key, &s)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("sentiment cache get failed")
	}
	if ok && err == nil {
		return s, nil
	}

	s, err = c.inner.Score(ctx, text)
	if err != nil {
		return domain.Sentiment{}, err
	}
	if err := c.cache.Set(ctx, key, s, int(c.ttl.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("sentiment cache set failed")
	}
	return s, nil
}

func (c *Cached) key(text string) string {
	sum := sha1.Sum([]byte(text))
	return "sentiment:" + c.model + ":" + hex.EncodeToString(sum[:])
}
