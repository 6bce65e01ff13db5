// Package executor provides the weighted parallel fan-out primitive used by
// the pack generators. Work is pre-assigned to a fixed set of workers by
// estimated weight; the weights influence load balancing only, never
// correctness.
package executor

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
)

// Pool is a reusable fan-out engine. A Pool carries no goroutines of its
// own; workers are spawned per ForEach call and joined before it returns.
type Pool struct {
	workers  int
	progress atomic.Int64
	goal     atomic.Int64
}

// New creates a pool with the given worker count. A count <= 0 selects
// runtime.NumCPU().
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

// Progress reports how many items of the current batch have completed. It
// increases monotonically within one ForEach call and is reset by the next.
func (p *Pool) Progress() int64 { return p.progress.Load() }

// Goal reports the total item count of the current batch.
func (p *Pool) Goal() int64 { return p.goal.Load() }

// ForEach runs action for every item and blocks until all scheduled work has
// finished (a join barrier). Items are distributed greedily by descending
// weight so heavy items spread evenly across workers. The first action error
// stops workers from starting further items; actions already in flight run
// to completion before ForEach returns that error. Context cancellation is
// checked between items.
func ForEach[T any](ctx context.Context, p *Pool, items []T, weight func(T) int64, action func(T) error) error {
	p.progress.Store(0)
	p.goal.Store(int64(len(items)))
	if len(items) == 0 {
		return ctx.Err()
	}

	workers := p.workers
	if workers > len(items) {
		workers = len(items)
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	if weight != nil {
		sort.SliceStable(order, func(a, b int) bool {
			return weight(items[order[a]]) > weight(items[order[b]])
		})
	}

	buckets := make([][]int, workers)
	totals := make([]int64, workers)
	for _, idx := range order {
		least := 0
		for w := 1; w < workers; w++ {
			if totals[w] < totals[least] {
				least = w
			}
		}
		buckets[least] = append(buckets[least], idx)
		cost := int64(1)
		if weight != nil {
			if est := weight(items[idx]); est > 0 {
				cost = est
			}
		}
		totals[least] += cost
	}

	var (
		wg       sync.WaitGroup
		failed   atomic.Bool
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
		failed.Store(true)
	}

	wg.Add(workers)
	for _, bucket := range buckets {
		go func(bucket []int) {
			defer wg.Done()
			for _, idx := range bucket {
				if failed.Load() {
					return
				}
				if err := ctx.Err(); err != nil {
					fail(err)
					return
				}
				if err := action(items[idx]); err != nil {
					fail(err)
					return
				}
				p.progress.Add(1)
			}
		}(bucket)
	}
	wg.Wait()

	return firstErr
}
