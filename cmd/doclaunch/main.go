package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/doclaunch/internal/docbuild"
	"git.home.luguber.info/inful/doclaunch/internal/project"
	"git.home.luguber.info/inful/doclaunch/internal/runner"
	"git.home.luguber.info/inful/doclaunch/internal/version"
	"git.home.luguber.info/inful/doclaunch/internal/watch"
	"github.com/alecthomas/kong"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Open struct{} `cmd:"" default:"1" help:"Build the API docs and open them in the browser"`

	Watch struct {
		Quiet    time.Duration `help:"Quiet window before a rebuild" default:"500ms"`
		MaxDelay time.Duration `help:"Upper bound on how long edits can postpone a rebuild" default:"5s"`
	} `cmd:"" help:"Rebuild the API docs whenever the sources change"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	kctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch kctx.Command() {
	case "open":
		if err := runOpen(); err != nil {
			slog.Error("Docs build failed", "error", err)
			os.Exit(runner.ExitCode(err))
		}
	case "watch":
		if err := runWatch(CLI.Watch.Quiet, CLI.Watch.MaxDelay); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(runner.ExitCode(err))
		}
	case "version":
		fmt.Printf("doclaunch %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
	}
}

// runOpen is the default behavior: one documentation build from the
// project root, opened in the viewer.
func runOpen() error {
	ctx := context.Background()

	root, err := project.SelfRoot()
	if err != nil {
		return err
	}
	docbuild.LoadEnv(root)

	if v := docbuild.DetectCargoVersion(ctx, docbuild.DefaultCargo); v != "" {
		slog.Debug("Detected cargo toolchain", "version", v)
	}

	build := docbuild.Build{Root: root, Open: true}
	return runner.New().Run(ctx, build.Step())
}

func runWatch(quiet, maxDelay time.Duration) error {
	root, err := project.SelfRoot()
	if err != nil {
		return err
	}
	docbuild.LoadEnv(root)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := runner.New()

	// The first build opens the viewer; rebuilds only refresh its content.
	first := docbuild.Build{Root: root, Open: true}
	if err := r.Run(ctx, first.Step()); err != nil {
		return err
	}

	w, err := watch.New(root, watch.Config{QuietWindow: quiet, MaxDelay: maxDelay})
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("Failed to close watcher", "error", err)
		}
	}()

	slog.Info("Watching for source changes", "root", root)
	rebuild := docbuild.Build{Root: root}
	return w.Run(ctx, func(ctx context.Context) error {
		return r.Run(ctx, rebuild.Step())
	})
}
