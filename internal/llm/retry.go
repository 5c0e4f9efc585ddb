package llm

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter. Every retry is logged as a warning so a
// slow generation can be told apart from a hung one.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    logrus.FieldLogger
}

// WithRetry wraps a Provider with retry logic. A nil log discards the
// retry warnings.
func WithRetry(p Provider, cfg RetryConfig, log logrus.FieldLogger) Provider {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &RetryProvider{inner: p, config: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalidRetried := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt == attempts || !r.shouldRetry(err, &invalidRetried) {
			return nil, err
		}

		wait := r.backoff(attempt-1, err)
		r.log.WithFields(logrus.Fields{
			"model":   r.inner.ModelID(),
			"purpose": PurposeFrom(ctx),
			"session": SessionFrom(ctx),
			"attempt": attempt,
			"of":      attempts,
			"wait":    wait.Round(time.Millisecond).String(),
		}).WithError(err).Warn("retrying LLM request")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// shouldRetry determines if an error is retryable.
func (r *RetryProvider) shouldRetry(err error, invalidRetried *bool) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Max tokens is a configuration issue, not transient.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	// Bad keys and unknown models fail the same way every time.
	var rejected *ErrRequestRejected
	if errors.As(err, &rejected) {
		return false
	}

	// Invalid response gets one retry.
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limit and provider unavailable are retryable.
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return true
	}

	// Other errors (network, etc.) are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	// Respect RetryAfter for rate limits.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
