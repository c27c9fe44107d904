package llm

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/nguyentantai21042004/study-scribe/internal/logger"
)

// RetryPolicy bounds retries of transient failures with jittered exponential backoff.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// backoff returns the wait before retry number attempt (1-based): half the
// exponential step plus a random share of the other half.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	d := p.InitialBackoff
	for i := 1; i < attempt && d < p.MaxBackoff; i++ {
		d *= 2
	}
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		d = p.MaxBackoff
	}
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(rand.Int64N(int64(d-half)+1))
}

func withRetry(ctx context.Context, p RetryPolicy, log logger.Logger, op string, fn func(ctx context.Context) (*Response, error)) (*Response, error) {
	max := p.attempts()

	for attempt := 1; ; attempt++ {
		resp, err := fn(ctx)
		if err == nil {
			return resp, nil
		}
		if !IsTransient(err) || attempt >= max {
			return nil, err
		}

		wait := p.backoff(attempt)
		log.Warn(ctx, "%s attempt %d/%d failed, retrying in %s: %v", op, attempt, max, wait, err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, err
		case <-timer.C:
		}
	}
}
