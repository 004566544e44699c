package esign

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

// maxRetryAttempts is the retry budget once a rate-limit signal is seen.
// Requests must stay within the published rates reported by the RateLimit
// response headers; on a quota or burst signal the client backs off until
// the reported reset time and retries the same request only once.
const maxRetryAttempts = 1

// rateLimitBackoff yields the delay until the reset timestamp of the most
// recently observed rate-limited response, in whole seconds, clamped at
// zero when the reset time has already passed.
type rateLimitBackoff struct {
	now     func() time.Time
	resetAt time.Time
}

func (b *rateLimitBackoff) Next() (time.Duration, bool) {
	d := b.resetAt.Sub(b.now()).Truncate(time.Second)
	if d < 0 {
		d = 0
	}
	return d, false
}

// execute runs one remote call with bounded recovery from rate limiting.
// Any failure other than a quota/burst signal is returned unchanged and is
// never retried; a rate-limited call is retried once after the back-off,
// and if the retry is rate limited too the original error is returned.
func (c *Client) execute(ctx context.Context, call func(ctx context.Context) error) error {
	backoff := &rateLimitBackoff{now: c.now}
	attempts := 0

	return retry.Do(ctx, retry.WithMaxRetries(maxRetryAttempts, backoff), func(ctx context.Context) error {
		attempts++

		err := call(ctx)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return err
		}

		exhausted := apiErr.rateLimitExhausted()
		burst := apiErr.rateLimitBurst()
		if !exhausted && !burst {
			return err
		}

		if exhausted {
			c.log.Warn(ctx, "request quota exhausted", "method", apiErr.Method, "path", apiErr.Path)
		}
		if burst {
			c.log.Warn(ctx, "burst detected", "method", apiErr.Method, "path", apiErr.Path)
		}

		if attempts <= maxRetryAttempts {
			backoff.resetAt = apiErr.RateLimitReset
			delay, _ := backoff.Next()
			c.log.Info(ctx, "retrying after back-off", "seconds", int(delay.Seconds()))
		} else {
			c.log.Error(ctx, "rate limit retry failed", "attempts", attempts, "method", apiErr.Method, "path", apiErr.Path)
		}

		return retry.RetryableError(err)
	})
}
