package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/packforge/internal/build"
	"git.home.luguber.info/inful/packforge/internal/config"
	"git.home.luguber.info/inful/packforge/internal/daemon"
	pferrors "git.home.luguber.info/inful/packforge/internal/errors"
	"git.home.luguber.info/inful/packforge/internal/history"
	"git.home.luguber.info/inful/packforge/internal/metrics"
	"git.home.luguber.info/inful/packforge/internal/notify"
)

// DaemonCmd implements the 'daemon' command.
type DaemonCmd struct {
	DataDir string `short:"d" help:"Data directory for daemon state" default:""`
}

func (d *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return pferrors.WrapConfig(err, "load config")
	}
	if d.DataDir != "" {
		cfg.Daemon.DataDir = d.DataDir
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner := build.NewRunner(cfg)

	if cfg.History.Enabled {
		path := cfg.History.Path
		if path == "" {
			if err := os.MkdirAll(cfg.Daemon.DataDir, 0o750); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}
			path = filepath.Join(cfg.Daemon.DataDir, "history.db")
		}
		store, err := history.Open(path)
		if err != nil {
			return fmt.Errorf("open build history: %w", err)
		}
		defer store.Close()
		runner.WithHistory(store)
	}

	if cfg.Notify.Enabled {
		pub, err := notify.NewPublisher(cfg.Notify.URL, cfg.Notify.Subject)
		if err != nil {
			return fmt.Errorf("connect notifier: %w", err)
		}
		defer pub.Close()
		runner.WithNotifier(pub)
	}

	dm := daemon.New(cfg, runner)
	if cfg.Metrics.Enabled {
		reg := prom.NewRegistry()
		runner.WithRecorder(metrics.NewPrometheusRecorder(reg))
		dm.WithMetricsHandler(metrics.HTTPHandler(reg))
	}

	slog.Info("Starting daemon mode", "data_dir", cfg.Daemon.DataDir)
	if err := dm.Run(ctx); err != nil {
		return pferrors.WrapDaemon(err, "daemon stopped")
	}
	return nil
}
