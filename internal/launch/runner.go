// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"stackhand/internal/command"
)

// ErrToolMissing is the sentinel error wrapped by ToolMissingError.
var ErrToolMissing = errors.New("build tool not found")

type (
	// ToolMissingError is returned when the build tool executable is
	// not locatable. It is checked once, before any command is issued.
	ToolMissingError struct {
		Tool string
	}

	// Result describes one finished run.
	Result struct {
		// LogKey names the output channel the run wrote to.
		LogKey string
		// ExitCode is the child's exit status; 0 on success.
		ExitCode int
		// Err is a post-start runtime failure, nil otherwise. Spawn
		// failures never produce a Result; they are returned
		// synchronously by Start.
		Err error
	}

	// Runner launches build tool processes. One external process per
	// Start call; completion arrives on the finish callback from the
	// reaper goroutine.
	Runner struct {
		logger  *log.Logger
		buffers *Buffers
	}
)

// Error implements the error interface.
func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("build tool %q is not on PATH", e.Tool)
}

// Unwrap returns ErrToolMissing for errors.Is() compatibility.
func (e *ToolMissingError) Unwrap() error { return ErrToolMissing }

// CheckTool verifies that the build tool is runnable, resolving it
// through PATH the way the shell would.
func CheckTool(tool string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", &ToolMissingError{Tool: tool}
	}
	return path, nil
}

// NewRunner returns a runner writing to the given channel registry. A
// nil registry gets a fresh one; a nil logger defaults to the package
// default.
func NewRunner(buffers *Buffers, logger *log.Logger) *Runner {
	if buffers == nil {
		buffers = NewBuffers()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{logger: logger, buffers: buffers}
}

// Buffers exposes the channel registry for output inspection.
func (r *Runner) Buffers() *Buffers { return r.buffers }

// Start launches cmd fire-and-forget. The working directory is cmd.Dir,
// stdout and stderr go to the channel named by cmd.LogKey, and onFinish
// is invoked exactly once when the process exits. Failure to spawn is
// returned synchronously and onFinish never fires; the engine does not
// retry launches.
func (r *Runner) Start(ctx context.Context, cmd *command.Command, onFinish func(Result)) error {
	if cmd.Edited != "" {
		return r.startEdited(ctx, cmd, onFinish)
	}

	buf := r.buffers.reset(cmd.LogKey)

	child := exec.CommandContext(ctx, cmd.Tool, cmd.Argv()...)
	child.Dir = cmd.Dir
	child.Stdout = buf
	child.Stderr = buf

	if err := child.Start(); err != nil {
		return fmt.Errorf("starting %s in %s: %w", cmd.Tool, cmd.Dir, err)
	}
	r.logger.Debug("process started", "tool", cmd.Tool, "operation", cmd.Operation, "log", cmd.LogKey)

	go func() {
		res := Result{LogKey: cmd.LogKey}
		if err := child.Wait(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				res.ExitCode = exitErr.ExitCode()
			} else {
				res.ExitCode = 1
				res.Err = err
			}
		}
		onFinish(res)
	}()
	return nil
}

// startEdited runs a user-edited command line through the embedded shell
// interpreter. The text is executed as shell, never re-split into an
// argument vector.
func (r *Runner) startEdited(ctx context.Context, cmd *command.Command, onFinish func(Result)) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(cmd.Edited), "edited-command")
	if err != nil {
		return fmt.Errorf("parsing edited command: %w", err)
	}

	buf := r.buffers.reset(cmd.LogKey)

	sh, err := interp.New(
		interp.Dir(cmd.Dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, buf, buf),
	)
	if err != nil {
		return fmt.Errorf("creating shell interpreter: %w", err)
	}
	r.logger.Debug("edited command started", "line", cmd.Edited, "log", cmd.LogKey)

	go func() {
		res := Result{LogKey: cmd.LogKey}
		if err := sh.Run(ctx, file); err != nil {
			if status, ok := interp.IsExitStatus(err); ok {
				res.ExitCode = int(status)
			} else {
				res.ExitCode = 1
				res.Err = err
			}
		}
		onFinish(res)
	}()
	return nil
}
