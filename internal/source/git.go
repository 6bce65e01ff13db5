package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/packforge/internal/config"
	pferrors "git.home.luguber.info/inful/packforge/internal/errors"
	"git.home.luguber.info/inful/packforge/internal/logfields"
	"git.home.luguber.info/inful/packforge/internal/retry"
)

// pullPolicy bounds how long a flaky remote can stall a build.
var pullPolicy = retry.NewPolicy(retry.BackoffExponential, 2*time.Second, 15*time.Second, 2)

// Sync fetches every git-backed asset root before a scan: clone on first
// use, pull afterwards. Roots without a git remote are left untouched.
// Pulls are retried with backoff since remote hiccups are transient; a
// failed clone surfaces immediately because a partial clone cannot be
// retried in place.
func (p *Provider) Sync(ctx context.Context) error {
	for _, src := range p.sources {
		if src.Git == nil {
			continue
		}
		if err := syncGitRoot(ctx, src); err != nil {
			return pferrors.WrapGit(err, fmt.Sprintf("sync source %s", src.Path))
		}
	}
	return nil
}

func syncGitRoot(ctx context.Context, src config.Source) error {
	if _, err := os.Stat(filepath.Join(src.Path, ".git")); err != nil {
		return cloneRoot(ctx, src)
	}
	return retry.Do(ctx, pullPolicy, func() error {
		return pullRoot(ctx, src)
	})
}

func cloneRoot(ctx context.Context, src config.Source) error {
	slog.Info("Cloning asset source", "url", src.Git.URL, logfields.Source(src.Path))
	opts := &git.CloneOptions{URL: src.Git.URL}
	if src.Git.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Git.Branch)
		opts.SingleBranch = true
	}
	if _, err := git.PlainCloneContext(ctx, src.Path, false, opts); err != nil {
		return fmt.Errorf("clone %s: %w", src.Git.URL, err)
	}
	return nil
}

func pullRoot(ctx context.Context, src config.Source) error {
	repo, err := git.PlainOpen(src.Path)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("get worktree: %w", err)
	}
	opts := &git.PullOptions{RemoteName: "origin"}
	if src.Git.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Git.Branch)
	}
	err = wt.PullContext(ctx, opts)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		slog.Debug("Asset source already up to date", logfields.Source(src.Path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("pull: %w", err)
	}
	slog.Info("Asset source updated", logfields.Source(src.Path))
	return nil
}
