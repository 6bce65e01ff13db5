// Package daemon keeps the pack continuously up to date: it watches the
// asset roots, debounces change bursts into single rebuilds, optionally
// rebuilds on a fixed schedule, and exposes the metrics endpoint.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/packforge/internal/build"
	"git.home.luguber.info/inful/packforge/internal/config"
	"git.home.luguber.info/inful/packforge/internal/logfields"
)

// Daemon owns the long-running rebuild loop.
type Daemon struct {
	cfg            *config.Config
	runner         *build.Runner
	workers        *WorkerGroup
	metricsHandler http.Handler
}

// New creates a daemon around an existing runner.
func New(cfg *config.Config, runner *build.Runner) *Daemon {
	return &Daemon{cfg: cfg, runner: runner, workers: &WorkerGroup{}}
}

// WithMetricsHandler attaches the handler served on the metrics listen
// address when metrics are enabled.
func (d *Daemon) WithMetricsHandler(h http.Handler) *Daemon {
	d.metricsHandler = h
	return d
}

// Run blocks until ctx is canceled. Every trigger source (watcher,
// scheduler) funnels into one debounced build loop, so concurrent builds
// never happen.
func (d *Daemon) Run(ctx context.Context) error {
	requests := make(chan string, 16)
	triggers := make(chan string, 1)

	if d.cfg.Daemon.Watch {
		w, err := newWatcher(sourcePaths(d.cfg.Sources), requests)
		if err != nil {
			return err
		}
		defer w.Close()
		d.workers.Go(func() { w.Run(ctx) })
	}

	quiet, err := d.cfg.Daemon.QuietWindowDuration()
	if err != nil {
		return err
	}
	maxDelay, err := d.cfg.Daemon.MaxDelayDuration()
	if err != nil {
		return err
	}
	deb := newDebouncer(quiet, maxDelay, requests, triggers)
	d.workers.Go(func() { deb.Run(ctx) })

	if interval, err := d.cfg.Daemon.IntervalDuration(); err != nil {
		return err
	} else if interval > 0 {
		sched, err := newScheduler(interval, requests)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Scheduler shutdown failed", "error", err)
			}
		}()
	}

	if d.cfg.Metrics.Enabled && d.metricsHandler != nil {
		d.serveMetrics(ctx)
	}

	slog.Info("Daemon running",
		"watch", d.cfg.Daemon.Watch,
		"mode", d.cfg.Pack.Mode,
		"sources", len(d.cfg.Sources))

	d.runBuild(ctx, "startup")

	for {
		select {
		case <-ctx.Done():
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := d.workers.StopAndWait(stopCtx); err != nil {
				slog.Warn("Daemon workers did not stop cleanly", "error", err)
			}
			return nil
		case reason := <-triggers:
			d.runBuild(ctx, reason)
		}
	}
}

func (d *Daemon) runBuild(ctx context.Context, reason string) {
	slog.Info("Starting pack build", logfields.Reason(reason))
	if _, err := d.runner.Run(ctx); err != nil {
		slog.Error("Pack build failed", logfields.Reason(reason), logfields.Error(err))
	}
}

func (d *Daemon) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", d.metricsHandler)
	srv := &http.Server{Addr: d.cfg.Metrics.Listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	d.workers.Go(func() {
		slog.Info("Metrics endpoint listening", "addr", d.cfg.Metrics.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	})
	d.workers.Go(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
}

func sourcePaths(sources []config.Source) []string {
	paths := make([]string, 0, len(sources))
	for _, src := range sources {
		paths = append(paths, src.Path)
	}
	return paths
}
