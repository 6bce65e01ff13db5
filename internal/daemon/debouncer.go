package daemon

import (
	"context"
	"time"
)

// debouncer coalesces bursts of change notifications into single build
// triggers. A trigger fires once the stream has been quiet for quiet, or
// maxDelay after the first notification of a burst, whichever comes first.
type debouncer struct {
	quiet    time.Duration
	maxDelay time.Duration
	in       <-chan string
	out      chan<- string
}

func newDebouncer(quiet, maxDelay time.Duration, in <-chan string, out chan<- string) *debouncer {
	return &debouncer{quiet: quiet, maxDelay: maxDelay, in: in, out: out}
}

// Run processes notifications until ctx is canceled. Safe as a single
// goroutine.
func (d *debouncer) Run(ctx context.Context) {
	var (
		quietTimer <-chan time.Time
		deadline   <-chan time.Time
		reason     string
		pending    bool
	)

	emit := func() {
		pending = false
		quietTimer = nil
		deadline = nil
		select {
		case d.out <- reason:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-d.in:
			if !ok {
				return
			}
			if !pending {
				pending = true
				reason = r
				deadline = time.After(d.maxDelay)
			}
			quietTimer = time.After(d.quiet)
		case <-quietTimer:
			if pending {
				emit()
			}
		case <-deadline:
			if pending {
				emit()
			}
		}
	}
}
