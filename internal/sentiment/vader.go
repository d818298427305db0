// Package sentiment provides the VADER scorer and a caching decorator for
// any domain.SentimentScorer.
package sentiment

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/jonreiter/govader"

	"review_analyzer/internal/domain"
)

// VaderModel identifies the analyzer in cache keys. Bump it with the
// govader version so stale scores are not served.
const VaderModel = "vader-f6505c8d03cc"

// Vader scores text with govader's compiled-in lexicon. The analyzer is
// read-only after construction and safe for concurrent use.
type Vader struct {
	sia *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (*Vader) Model() string { return VaderModel }

func (v *Vader) Score(_ context.Context, text string) (domain.Sentiment, error) {
	return v.Polarity(text), nil
}

// Polarity rounds like vaderSentiment's polarity_scores: proportions to 3
// decimals, compound to 4.
func (v *Vader) Polarity(text string) domain.Sentiment {
	if !hasWord(text) {
		return domain.NeutralSentiment
	}
	s := v.sia.PolarityScores(text)
	out := domain.Sentiment{
		Neg:      round(s.Negative, 3),
		Neu:      round(s.Neutral, 3),
		Pos:      round(s.Positive, 3),
		Compound: round(s.Compound, 4),
	}
	if out.Neg+out.Neu+out.Pos == 0 {
		return domain.NeutralSentiment
	}
	return out
}

func hasWord(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
