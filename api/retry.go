package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultRetryInitialInterval = 200 * time.Millisecond

// Retrier retries transient upstream failures with exponential backoff.
// Client errors other than 429 are not retried.
type Retrier struct {
	MaxAttempts     int
	InitialInterval time.Duration
}

func NewRetrier(maxAttempts int) Retrier {
	return Retrier{MaxAttempts: maxAttempts, InitialInterval: defaultRetryInitialInterval}
}

// Retry runs op until it succeeds, fails permanently, runs out of attempts or ctx is done.
func Retry[T any](ctx context.Context, r Retrier, name string, op func(ctx context.Context) (T, error)) (T, error) {
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	policy := backoff.NewExponentialBackOff()
	if r.InitialInterval > 0 {
		policy.InitialInterval = r.InitialInterval
	}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx)

	return backoff.RetryNotifyWithData(func() (T, error) {
		v, err := op(ctx)
		if err != nil && (ctx.Err() != nil || !IsRetryable(err)) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, b, func(err error, wait time.Duration) {
		log.Printf("[Retry] %s failed, retrying in %v: %v", name, wait, err)
	})
}

// IsRetryable reports whether err is worth another attempt: network failures, 429 and 5xx.
func IsRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}
