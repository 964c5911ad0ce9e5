package log

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Progress tracks a long-running batch and logs structured step updates
// with percentage and ETA. Safe for concurrent Step calls.
type Progress struct {
	mu      sync.Mutex
	name    string
	total   int
	current int
	started time.Time
}

// NewProgress starts tracking a batch of total steps.
func NewProgress(name string, total int) *Progress {
	return &Progress{name: name, total: total, started: time.Now()}
}

// Step records one completed unit and logs it with ETA.
func (p *Progress) Step(label string) {
	p.mu.Lock()
	p.current++
	current := p.current
	elapsed := time.Since(p.started)
	p.mu.Unlock()

	ev := log.Info().
		Str("task", p.name).
		Str("item", label).
		Int("done", current).
		Int("total", p.total)
	if p.total > 0 {
		ev = ev.Float64("pct", 100*float64(current)/float64(p.total))
		if current > 0 && current < p.total {
			perStep := elapsed / time.Duration(current)
			ev = ev.Dur("eta", perStep*time.Duration(p.total-current))
		}
	}
	ev.Msg("progress")
}

// Done logs the batch summary.
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	log.Info().
		Str("task", p.name).
		Int("done", p.current).
		Int("total", p.total).
		Dur("elapsed", time.Since(p.started)).
		Msg("complete")
}
