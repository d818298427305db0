package app

import (
	"errors"
	"fmt"
	"strings"

	"review_analyzer/internal/domain"
)

var (
	errEmptyID   = errors.New("empty ReviewId")
	errEmptyBody = errors.New("empty ReviewBody")
)

// mapRecord turns a bootstrap row into a Review. Location membership is
// checked by the caller, which owns the registry.
func mapRecord(rec domain.ReviewRecord) (domain.Review, error) {
	id := strings.TrimSpace(rec.ReviewID)
	if id == "" {
		return domain.Review{}, errEmptyID
	}
	if rec.ReviewBody == "" {
		return domain.Review{}, errEmptyBody
	}
	ts, err := domain.ParseTimestamp(strings.TrimSpace(rec.Timestamp))
	if err != nil {
		return domain.Review{}, fmt.Errorf("timestamp %q: %w", rec.Timestamp, err)
	}
	return domain.Review{
		ID:        id,
		Body:      rec.ReviewBody,
		Location:  strings.TrimSpace(rec.Location),
		Timestamp: ts,
	}, nil
}

// toRecord is the inverse of mapRecord, used when exporting to a seed table.
func toRecord(r domain.Review) domain.ReviewRecord {
	return domain.ReviewRecord{
		ReviewID:   r.ID,
		ReviewBody: r.Body,
		Location:   r.Location,
		Timestamp:  domain.FormatTimestamp(r.Timestamp),
	}
}
