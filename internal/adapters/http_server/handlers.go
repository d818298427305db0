// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
)

const (
	msgInvalidLocation = "Invalid Location"
	msgMissingField    = "ReviewBody and Location are required"
)

type Handlers struct {
	Q         *app.QueryService
	S         *app.SubmissionService
	Locations *domain.LocationRegistry
	// SubmitLimiter throttles POST / when set.
	SubmitLimiter *rate.Limiter
}

type sentimentJSON struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

type reviewJSON struct {
	ReviewID   string         `json:"ReviewId"`
	ReviewBody string         `json:"ReviewBody"`
	Location   string         `json:"Location"`
	Timestamp  string         `json:"Timestamp"`
	Sentiment  *sentimentJSON `json:"sentiment,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/locations", h.listLocations)
	s.mux.Get("/", h.listReviews)

	post := s.mux.With()
	if h.SubmitLimiter != nil {
		post = s.mux.With(RateLimit(h.SubmitLimiter))
	}
	post.Post("/", h.submitReview)
}

func toJSON(r domain.Review) reviewJSON {
	return reviewJSON{
		ReviewID:   r.ID,
		ReviewBody: r.Body,
		Location:   r.Location,
		Timestamp:  domain.FormatTimestamp(r.Timestamp),
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps domain errors to plain-text client errors; anything else
// is a 500 carrying the error text.
func writeError(w http.ResponseWriter, err error) {
	var de *app.DateError
	switch {
	case errors.Is(err, domain.ErrInvalidLocation):
		writeText(w, http.StatusBadRequest, msgInvalidLocation)
	case errors.Is(err, domain.ErrMissingField):
		writeText(w, http.StatusBadRequest, msgMissingField)
	case errors.As(err, &de):
		writeText(w, http.StatusBadRequest, "Invalid "+de.Param+": expected YYYY-MM-DD")
	case errors.Is(err, domain.ErrInvalidDateFormat):
		writeText(w, http.StatusBadRequest, "Invalid date: expected YYYY-MM-DD")
	default:
		log.Error().Err(err).Msg("request failed")
		writeText(w, http.StatusInternalServerError, err.Error())
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	// an unregistered location wins over a malformed date in the same request
	if loc := q.Get("location"); loc != "" && !h.Locations.IsValid(loc) {
		writeError(w, domain.ErrInvalidLocation)
		return
	}
	f, err := app.ParseFilter(q.Get("location"), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}

	scored, err := h.Q.Query(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]reviewJSON, 0, len(scored))
	for _, sr := range scored {
		rj := toJSON(sr.Review)
		rj.Sentiment = &sentimentJSON{
			Neg:      sr.Sentiment.Neg,
			Neu:      sr.Sentiment.Neu,
			Pos:      sr.Sentiment.Pos,
			Compound: sr.Sentiment.Compound,
		}
		out = append(out, rj)
	}

	etag, body, err := calcETagAndBody(out)
	if err != nil {
		writeError(w, err)
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listReviews body")
	}
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, fmt.Errorf("parse form: %w", err))
		return
	}
	sub := app.Submission{
		Body:     r.PostForm.Get("ReviewBody"),
		Location: r.PostForm.Get("Location"),
	}
	created, err := h.S.Submit(r.Context(), sub)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJSON(created.Review))
}

func (h *Handlers) listLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Locations.List())
}
