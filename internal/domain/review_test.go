package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_analyzer/internal/domain"
)

func TestTimestamp_RoundTrip(t *testing.T) {
	for _, ts := range []time.Time{
		time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
	} {
		s := domain.FormatTimestamp(ts)
		back, err := domain.ParseTimestamp(s)
		require.NoError(t, err)
		assert.True(t, ts.Equal(back), "%s != %s", ts, back)
	}
}

func TestTimestamp_SubSecondIsDropped(t *testing.T) {
	ts := time.Date(2024, 3, 2, 8, 30, 15, 999_000_000, time.UTC)
	back, err := domain.ParseTimestamp(domain.FormatTimestamp(ts))
	require.NoError(t, err)
	assert.True(t, ts.Truncate(time.Second).Equal(back))
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"2024/01/02", "2024-1-2", "02-01-2024", "2024-01-02 10:00:00", "yesterday"} {
		_, err := domain.ParseDate(bad)
		assert.Error(t, err, bad)
	}
}
