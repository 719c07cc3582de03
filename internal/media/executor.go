package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMux tags failures of the external mux process so callers can tell them
// apart from download failures.
var ErrMux = errors.New("mux process failed")

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s exited with status %d: %s", ErrMux, binary, exitErr.ExitCode(), stderrTail(stderr.String()))
		}
		return fmt.Errorf("%w: run %s: %v", ErrMux, binary, err)
	}
	return nil
}

// stderrTail keeps the last few lines of tool output, which is where ffmpeg
// puts the actual failure reason.
func stderrTail(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	const keep = 5
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.Join(lines, " / ")
}
