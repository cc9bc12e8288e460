package adapter

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// RunOutput is the raw result of one child-process execution, before the
// domain classifies it into a sweep outcome.
type RunOutput struct {
	Output    string // combined stdout/stderr
	ExitCode  int    // valid when LaunchErr is nil
	TimedOut  bool   // deadline hit, process killed
	LaunchErr error  // binary missing, permissions; process never ran
	Duration  time.Duration
}

// ToolRunner abstracts running the external synthesis tool as a child
// process. The invocation blocks until the process exits or the timeout
// fires.
type ToolRunner interface {
	Run(ctx context.Context, workDir, binary string, args ...string) RunOutput
}

// LocalToolRunner provides a concrete implementation using os/exec.
type LocalToolRunner struct {
	timeout time.Duration
}

// NewLocalToolRunner constructs a LocalToolRunner with the given per-run
// timeout. A zero timeout means no deadline beyond the caller's context.
func NewLocalToolRunner(timeout time.Duration) *LocalToolRunner {
	return &LocalToolRunner{timeout: timeout}
}

// Run executes binary with args in workDir, buffering combined output.
func (a *LocalToolRunner) Run(ctx context.Context, workDir, binary string, args ...string) RunOutput {
	if a.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	out := RunOutput{
		Output:   stdout.String() + stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return out
	}

	if ctx.Err() != nil {
		// Deadline or cancellation: the process was killed before finishing.
		out.TimedOut = true
		out.ExitCode = -1

		return out
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out
	}

	out.LaunchErr = err
	out.ExitCode = -1

	return out
}
