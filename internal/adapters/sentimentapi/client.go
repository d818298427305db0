// internal/adapters/sentimentapi/client.go
package sentimentapi

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

// Client scores text with a remote sentiment model:
// POST {base}/score {"text": "..."} -> {"neg","neu","pos","compound"}.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if strings.TrimSpace(base) == "" {
		return nil, fmt.Errorf("sentiment API base URL is required")
	}
	if rps <= 0 {
		rps = 20
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// Model names the remote scorer in cache keys.
func (c *Client) Model() string { return "remote:" + c.base }

type scoreRequest struct {
	Text string `json:"text"`
}

type scoreResponse struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

func (c *Client) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	// the model is never asked about text with nothing to score
	if strings.TrimFunc(text, isNotWord) == "" {
		return domain.NeutralSentiment, nil
	}
	body, err := json.Marshal(scoreRequest{Text: text})
	if err != nil {
		return domain.Sentiment{}, err
	}
	var out scoreResponse
	if err := c.post(ctx, c.base+"/score", body, &out); err != nil {
		return domain.Sentiment{}, err
	}
	if err := validate(out); err != nil {
		return domain.Sentiment{}, err
	}
	return domain.Sentiment{Neg: out.Neg, Neu: out.Neu, Pos: out.Pos, Compound: out.Compound}, nil
}

// ---- Internals ----

var (
	ErrUnauthorized = errors.New("sentimentapi: unauthorized")
	ErrBadResponse  = errors.New("sentimentapi: response violates score contract")
)

func validate(r scoreResponse) error {
	for _, v := range []float64{r.Neg, r.Neu, r.Pos, r.Compound} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrBadResponse
		}
	}
	if r.Compound < -1 || r.Compound > 1 {
		return fmt.Errorf("%w: compound %v", ErrBadResponse, r.Compound)
	}
	if sum := r.Neg + r.Neu + r.Pos; math.Abs(sum-1) > 0.01 {
		return fmt.Errorf("%w: proportions sum to %v", ErrBadResponse, sum)
	}
	return nil
}

func isNotWord(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r > 127)
}

// post performs a POST with client-side rate limiting, retries, and JSON decode into out.
// Scoring is idempotent, so 429 and transient 5xx are retried, honoring Retry-After.
func (c *Client) post(ctx context.Context, url string, body []byte, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	status := 0
	defer func() { observability.ObserveExternal("sentimentapi", "/score", status, time.Since(start)) }()

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "review-analyzer/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		status = resp.StatusCode

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 100ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
