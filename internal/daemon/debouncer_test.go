package daemon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func collectTrigger(t *testing.T, out <-chan string, within time.Duration) (string, bool) {
	t.Helper()
	select {
	case reason := <-out:
		return reason, true
	case <-time.After(within):
		return "", false
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	in := make(chan string, 16)
	out := make(chan string, 1)
	d := newDebouncer(30*time.Millisecond, time.Second, in, out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	for i := 0; i < 5; i++ {
		in <- "fs:models/dragon.json"
	}

	reason, ok := collectTrigger(t, out, time.Second)
	assert.True(t, ok, "a trigger fires after the quiet window")
	assert.Equal(t, "fs:models/dragon.json", reason, "the first reason of the burst wins")

	_, ok = collectTrigger(t, out, 100*time.Millisecond)
	assert.False(t, ok, "one burst yields one trigger")
}

func TestDebouncerMaxDelayBoundsPostponement(t *testing.T) {
	in := make(chan string, 16)
	out := make(chan string, 1)
	d := newDebouncer(50*time.Millisecond, 150*time.Millisecond, in, out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	// Keep the stream noisy so the quiet window never elapses.
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case in <- "fs:noise":
				default:
				}
			}
		}
	}()
	defer close(stop)

	_, ok := collectTrigger(t, out, time.Second)
	assert.True(t, ok, "max delay forces a trigger despite constant noise")
}

func TestDebouncerStopsOnContextCancel(t *testing.T) {
	in := make(chan string)
	out := make(chan string, 1)
	d := newDebouncer(10*time.Millisecond, time.Second, in, out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debouncer did not stop on cancellation")
	}
}
