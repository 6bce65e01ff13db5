// Package build runs one pack build end to end: git source sync, parallel
// resource production, materialization through the configured generator,
// and the post-build bookkeeping (metrics, history, change notification).
package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/packforge/internal/config"
	pferrors "git.home.luguber.info/inful/packforge/internal/errors"
	"git.home.luguber.info/inful/packforge/internal/executor"
	"git.home.luguber.info/inful/packforge/internal/history"
	"git.home.luguber.info/inful/packforge/internal/logfields"
	"git.home.luguber.info/inful/packforge/internal/metrics"
	"git.home.luguber.info/inful/packforge/internal/notify"
	"git.home.luguber.info/inful/packforge/internal/pack"
	"git.home.luguber.info/inful/packforge/internal/source"
)

// Runner wires the configured provider, pool, and generator together and
// owns the post-build side channels. A Runner is reused across builds; the
// obfuscator state inside the provider persists so tokens stay stable
// within one process lifetime.
type Runner struct {
	cfg      *config.Config
	provider *source.Provider
	pool     *executor.Pool
	recorder metrics.Recorder
	store    *history.Store
	notifier *notify.Publisher
}

// NewRunner creates a runner for the given configuration.
func NewRunner(cfg *config.Config) *Runner {
	obf := pack.NewPair(
		pack.ForConfig(cfg.Pack.Obfuscation),
		pack.ForConfig(cfg.Pack.Obfuscation),
	)
	return &Runner{
		cfg:      cfg,
		provider: source.NewProvider(cfg.Sources, obf),
		pool:     executor.New(cfg.Pack.Workers),
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	r.recorder = rec
	return r
}

// WithHistory sets the optional build history store.
func (r *Runner) WithHistory(store *history.Store) *Runner {
	r.store = store
	return r
}

// WithNotifier sets the optional change notification publisher.
func (r *Runner) WithNotifier(pub *notify.Publisher) *Runner {
	r.notifier = pub
	return r
}

// Generator selects the configured pack generator.
func (r *Runner) Generator() (pack.Generator, error) {
	switch pack.Mode(r.cfg.Pack.Mode) {
	case pack.ModeFolder:
		return pack.NewFolder(r.cfg.Pack.Directory), nil
	case pack.ModeZip:
		g := pack.NewZip(r.cfg.Pack.Archive, pack.NewFreshness(r.cfg.Pack.CacheDir))
		if r.cfg.Pack.Comment != "" {
			g.Comment = r.cfg.Pack.Comment
		}
		return g, nil
	case pack.ModeNone:
		return pack.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown pack mode %q", r.cfg.Pack.Mode)
	}
}

// Run executes one build and returns the frozen result.
func (r *Runner) Run(ctx context.Context) (*pack.Result, error) {
	start := time.Now()

	if err := r.provider.Sync(ctx); err != nil {
		r.recorder.IncBuildOutcome("failed")
		return nil, err
	}

	gen, err := r.Generator()
	if err != nil {
		r.recorder.IncBuildOutcome("failed")
		return nil, err
	}

	done := make(chan struct{})
	go r.reportProgress(ctx, done)

	res, err := gen.Generate(ctx, r.provider, r.pool)
	close(done)
	if err != nil {
		r.recorder.IncBuildOutcome("failed")
		return nil, pferrors.WrapBuild(err, "generate pack")
	}

	duration := time.Since(start)
	r.recorder.IncBuildOutcome("success")
	r.recorder.ObserveBuildDuration(duration)
	r.recorder.ObserveResourceCount(res.Len())
	r.recorder.IncChangeResult(res.Changed())

	slog.Info("Pack build finished",
		logfields.BuildID(buildID(res)),
		logfields.Mode(r.cfg.Pack.Mode),
		logfields.Resources(res.Len()),
		logfields.Changed(res.Changed()),
		logfields.Hash(res.Hash()),
		logfields.DurationMS(float64(duration.Milliseconds())))

	r.record(ctx, res, duration)
	r.publish(res)
	return res, nil
}

// reportProgress logs batch progress from the pool until the build
// completes. Reporting only; the join barrier is inside the generator.
func (r *Runner) reportProgress(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if goal := r.pool.Goal(); goal > 0 {
				slog.Debug("Build progress", "completed", r.pool.Progress(), "goal", goal)
			}
		}
	}
}

func (r *Runner) record(ctx context.Context, res *pack.Result, duration time.Duration) {
	if r.store == nil {
		return
	}
	entry := history.Build{
		ID:        buildID(res),
		CreatedAt: time.Now(),
		Mode:      r.cfg.Pack.Mode,
		Hash:      res.Hash(),
		Changed:   res.Changed(),
		Resources: res.Len(),
		Duration:  duration,
	}
	if err := r.store.Append(ctx, entry); err != nil {
		slog.Warn("Failed to record build history", logfields.Error(err))
	}
}

func (r *Runner) publish(res *pack.Result) {
	if r.notifier == nil || !res.Changed() {
		return
	}
	event := notify.Event{
		BuildID:   buildID(res),
		Hash:      res.Hash(),
		Mode:      r.cfg.Pack.Mode,
		Resources: res.Len(),
		Timestamp: time.Now(),
	}
	if err := r.notifier.Publish(event); err != nil {
		slog.Warn("Failed to publish build event", logfields.Error(err))
	}
}

func buildID(res *pack.Result) string {
	if meta, ok := res.Meta().(source.Meta); ok {
		return meta.BuildID
	}
	return ""
}
