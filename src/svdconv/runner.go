// Package svdconv invokes the external SVDConv validator binary.
package svdconv

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolFailed signals that the validator wrote to stderr. Its diagnostics
// go to stdout; anything on stderr means the invocation itself went wrong
// (missing file, bad arguments), so nothing downstream should run.
var ErrToolFailed = errors.New("svdconv run failed")

// Runner abstracts the validator invocation so the check command can be
// tested without a real binary.
type Runner interface {
	// Run validates the SVD file at path and returns the tool's stdout.
	Run(ctx context.Context, path string) (string, error)
}

// ExecRunner runs a local SVDConv binary.
type ExecRunner struct {
	// Binary is the path to the SVDConv executable.
	Binary string
}

func NewExecRunner(binary string) *ExecRunner {
	return &ExecRunner{Binary: binary}
}

// Run invokes the binary with the SVD path as its sole argument and captures
// stdout and stderr separately. SVDConv exits non-zero whenever it reported
// any error-level diagnostic, so a non-zero exit with empty stderr is a
// parse result, not a failure.
func (r *ExecRunner) Run(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, r.Binary, path)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return "", fmt.Errorf("%w: %s", ErrToolFailed, msg)
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			// Tolerated: the exit code mirrors the diagnostic tally.
			return stdout.String(), nil
		}
		return "", fmt.Errorf("%w: %v", ErrToolFailed, runErr)
	}

	return stdout.String(), nil
}
