package domain

import (
	"context"
	"iter"
)

// ReviewStore is the append-only collection shared by queries and submissions.
type ReviewStore interface {
	Append(r Review) error
	All() iter.Seq[Review]
	Len() int
}

type SentimentScorer interface {
	Score(ctx context.Context, text string) (Sentiment, error)
}

// ReviewSource yields bootstrap rows in their original order.
type ReviewSource interface {
	LoadReviews(ctx context.Context) ([]ReviewRecord, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
