package harvest

import (
	"context"

	"github.com/fwojciec/tunescrape"
	"golang.org/x/time/rate"
)

var _ tunescrape.Limiter = (*Limiter)(nil)

// Limiter paces remote calls with a token bucket of burst 1.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps calls per second.
// A non-positive rps disables limiting.
func NewLimiter(rps float64) *Limiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &Limiter{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next call may proceed.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
