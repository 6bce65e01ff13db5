package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/packforge/internal/build"
	"git.home.luguber.info/inful/packforge/internal/config"
	pferrors "git.home.luguber.info/inful/packforge/internal/errors"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Mode string `short:"m" help:"Override pack.mode (folder|zip|none)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return pferrors.WrapConfig(err, "load config")
	}
	if b.Mode != "" {
		cfg.Pack.Mode = b.Mode
		if err := cfg.Validate(); err != nil {
			return pferrors.ValidationError(err.Error())
		}
		slog.Info("Pack mode overridden via CLI flag", "mode", b.Mode)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, err := build.NewRunner(cfg).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Built %d resources (changed=%v)\n", res.Len(), res.Changed())
	return nil
}
