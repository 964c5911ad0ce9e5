package scan

import (
	"context"
	"math/rand"
	"time"
)

// Pacer owns the shared request-timing state for a batch run. It replaces
// any process-wide "last request time": the orchestration loop constructs
// one Pacer and passes it into each call, so the core exposes no global
// mutable state.
type Pacer struct {
	minInterval time.Duration
	jitter      time.Duration
	last        time.Time
	sleep       func(context.Context, time.Duration) error
	rng         *rand.Rand
}

// NewPacer enforces at least minInterval between provider calls, plus a
// small random jitter to avoid aligned request trains.
func NewPacer(minInterval, jitter time.Duration) *Pacer {
	return &Pacer{
		minInterval: minInterval,
		jitter:      jitter,
		sleep:       sleepCtx,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks until the next request may go out, or the context is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if !p.last.IsZero() {
		elapsed := time.Since(p.last)
		if elapsed < p.minInterval {
			wait := p.minInterval - elapsed
			if p.jitter > 0 {
				wait += time.Duration(p.rng.Int63n(int64(p.jitter)))
			}
			if err := p.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	p.last = time.Now()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
