package service

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacing presets. Safe mode stays under free-tier quotas; fast mode
// assumes a paid key.
const (
	SafeModeInterval = 30 * time.Second
	FastModeInterval = 10 * time.Second
)

// Pacer is a token bucket shared by every extraction call site. It
// replaces ad hoc inter-chunk sleeps so the pacing survives if callers
// are ever parallelized.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer allows one call per interval, with the first call passing
// immediately.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// NewPacerForMode picks the preset interval for the given mode.
func NewPacerForMode(safeMode bool) *Pacer {
	if safeMode {
		return NewPacer(SafeModeInterval)
	}
	return NewPacer(FastModeInterval)
}

// Wait blocks until the next call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

// Interval reports the configured minimum spacing between calls.
func (p *Pacer) Interval() time.Duration {
	if p == nil {
		return 0
	}
	limit := p.limiter.Limit()
	if limit <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(limit))
}
