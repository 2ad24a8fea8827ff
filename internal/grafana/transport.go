package grafana

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
	// Sleep waits for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

const (
	defaultRetryMax    = 3
	defaultBackoffBase = 250 * time.Millisecond
	defaultBackoffCap  = 5 * time.Second
)

// RetryOptions configure the retrying transport.
type RetryOptions struct {
	RetryMax    int
	BackoffBase time.Duration
	BackoffCap  time.Duration
	Clock       Clock
	Base        http.RoundTripper
}

// RetryTransport retries idempotent requests on throttling, gateway errors
// and transient network failures.
type RetryTransport struct {
	opts RetryOptions
}

// NewRetryTransport fills in defaults for unset options.
func NewRetryTransport(opts RetryOptions) *RetryTransport {
	if opts.RetryMax < 0 {
		opts.RetryMax = 0
	} else if opts.RetryMax == 0 {
		opts.RetryMax = defaultRetryMax
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	if opts.BackoffCap <= 0 {
		opts.BackoffCap = defaultBackoffCap
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Base == nil {
		opts.Base = http.DefaultTransport
	}
	return &RetryTransport{opts: opts}
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	attempts := 1
	if isIdempotent(req.Method) {
		attempts += t.opts.RetryMax
	}

	for attempt := 0; ; attempt++ {
		if err := req.Context().Err(); err != nil {
			return nil, err
		}
		last := attempt >= attempts-1

		resp, err := t.opts.Base.RoundTrip(req)
		if err != nil {
			if last || !isTransientNetErr(err) {
				return nil, err
			}
			if err := t.opts.Clock.Sleep(req.Context(), calculateBackoff(attempt, t.opts.BackoffBase, t.opts.BackoffCap)); err != nil {
				return nil, err
			}
			continue
		}
		if last || !shouldRetryStatus(resp.StatusCode) {
			return resp, nil
		}

		wait := parseRetryAfter(resp.Header.Get("Retry-After"), t.opts.Clock.Now())
		if wait <= 0 {
			wait = calculateBackoff(attempt, t.opts.BackoffBase, t.opts.BackoffCap)
		}
		_ = resp.Body.Close()
		if err := t.opts.Clock.Sleep(req.Context(), min(wait, t.opts.BackoffCap)); err != nil {
			return nil, err
		}
	}
}

// calculateBackoff doubles base for every prior attempt, capped at limit.
func calculateBackoff(attempt int, base, limit time.Duration) time.Duration {
	if attempt <= 0 {
		return min(base, limit)
	}
	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= limit {
			return limit
		}
	}
	return delay
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

func isTransientNetErr(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") || strings.Contains(msg, "timeout")
}

func shouldRetryStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func parseRetryAfter(h string, now time.Time) time.Duration {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if when, err := http.ParseTime(h); err == nil {
		if d := when.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
