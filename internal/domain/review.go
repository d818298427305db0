package domain

import "time"

const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

type Review struct {
	ID        string
	Body      string
	Location  string
	Timestamp time.Time
}

// Sentiment holds the polarity proportions (Neg+Neu+Pos ≈ 1) and the
// normalized Compound score in [-1, 1].
type Sentiment struct {
	Neg      float64
	Neu      float64
	Pos      float64
	Compound float64
}

// NeutralSentiment is returned for text that carries no scorable tokens.
var NeutralSentiment = Sentiment{Neu: 1}

type ScoredReview struct {
	Review
	Sentiment Sentiment
}

// ReviewRecord is one row of the bootstrap table, as read from CSV or MySQL.
type ReviewRecord struct {
	ReviewID   string
	ReviewBody string
	Location   string
	Timestamp  string
}

type ReviewFilter struct {
	Location string     // "" = any
	Start    *time.Time // inclusive, start of day
	End      *time.Time // inclusive, compared as-is
}

func FormatTimestamp(t time.Time) string { return t.Format(TimestampLayout) }

// ParseTimestamp reads a "YYYY-MM-DD HH:MM:SS" string as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
