package model

import (
	"strings"
	"time"
)

// Outcome classifies a finished tool invocation.
type Outcome string

const (
	// OutcomeSuccess means exit code 0 with no failure marker in the output.
	OutcomeSuccess Outcome = "success"
	// OutcomeToolFailure means a nonzero exit or a reported synthesis failure.
	// This is a normal per-point sweep outcome, not a crash.
	OutcomeToolFailure Outcome = "tool-failure"
	// OutcomeTimeout means the invocation exceeded its deadline and was killed.
	OutcomeTimeout Outcome = "timeout"
	// OutcomeLaunch means the tool binary could not be started at all.
	// No point can succeed after this, so it aborts the sweep.
	OutcomeLaunch Outcome = "launch-error"
)

// Invocation binds a workspace and point to a concrete command line.
type Invocation struct {
	Binary string
	Args   []string
	Dir    Path // working directory, the workspace root
	Script Path // generated batch script consumed by the tool
}

// CommandLine renders the invocation for diagnostics.
func (i Invocation) CommandLine() string {
	parts := append([]string{i.Binary}, i.Args...)
	return strings.Join(parts, " ")
}

// InvocationResult captures what the child process did.
type InvocationResult struct {
	Outcome  Outcome
	ExitCode int
	Output   string // combined stdout/stderr
	Duration time.Duration
}
