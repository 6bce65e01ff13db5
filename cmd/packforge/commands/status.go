package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/packforge/internal/config"
	pferrors "git.home.luguber.info/inful/packforge/internal/errors"
	"git.home.luguber.info/inful/packforge/internal/history"
)

// StatusCmd implements the 'status' command.
type StatusCmd struct {
	Limit int `short:"n" help:"Number of builds to show" default:"10"`
}

func (s *StatusCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return pferrors.WrapConfig(err, "load config")
	}
	if !cfg.History.Enabled {
		return pferrors.ConfigError("history is disabled; enable history in the configuration to track builds")
	}

	store, err := history.Open(historyPath(cfg))
	if err != nil {
		return fmt.Errorf("open build history: %w", err)
	}
	defer store.Close()

	builds, err := store.Recent(context.Background(), s.Limit)
	if err != nil {
		return fmt.Errorf("read build history: %w", err)
	}
	if len(builds) == 0 {
		fmt.Println("no builds recorded yet")
		return nil
	}

	for _, b := range builds {
		fmt.Printf("%s  %-6s  changed=%-5v  %4d resources  %8s  %s\n",
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			b.Mode, b.Changed, b.Resources, b.Duration.Round(time.Millisecond), b.ID)
	}
	return nil
}

// historyPath resolves the store location the same way the daemon does.
func historyPath(cfg *config.Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return filepath.Join(cfg.Daemon.DataDir, "history.db")
}
