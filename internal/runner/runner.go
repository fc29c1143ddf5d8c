// Package runner executes external commands in sequence with shell-style
// command tracing and abort-on-first-error semantics.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Step is a single external command invocation.
type Step struct {
	Name string   // short label used in logs and errors
	Argv []string // command and arguments; Argv[0] is resolved via PATH
	Dir  string   // working directory; empty inherits the process cwd
	Env  []string // extra KEY=VALUE entries appended to the process env
}

// Runner runs steps in order, stopping at the first failure. Child stdout
// and stderr pass through unmodified.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Runner wired to the process stdout/stderr.
func New() *Runner {
	return &Runner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes the steps in order, tracing each command before it runs.
// The first failure aborts the sequence. The returned error keeps the
// child's *exec.ExitError in its chain so ExitCode can recover the status.
func (r *Runner) Run(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		if len(step.Argv) == 0 {
			return fmt.Errorf("step %s: empty argv", step.Name)
		}
		slog.Info("+ "+strings.Join(step.Argv, " "), "step", step.Name, "dir", step.Dir)

		cmd := exec.CommandContext(ctx, step.Argv[0], step.Argv[1:]...)
		cmd.Dir = step.Dir
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
		if len(step.Env) > 0 {
			cmd.Env = append(os.Environ(), step.Env...)
		}

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("step %s: %s: %w", step.Name, step.Argv[0], err)
		}
	}
	return nil
}

// ExitCode maps an error from Run to a process exit status: the child's
// own exit code when it ran and failed, 1 for any other error, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
