package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"hlsweep.dev/pkg/hlsweep/internal/adapter"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// ScriptFileName is the batch script written into each workspace.
const ScriptFileName = "run_hls.tcl"

// Invoker builds and executes the external tool command for one point. All
// tool output lands under the workspace; the invoker never touches the
// results directory.
type Invoker struct {
	fs      adapter.WorkspaceFS
	runner  adapter.ToolRunner
	scripts *ScriptBuilder
	binary  string
	markers []string // output substrings that mean the tool failed despite exit 0
}

// NewInvoker constructs an Invoker for the given tool binary.
func NewInvoker(fs adapter.WorkspaceFS, runner adapter.ToolRunner, scripts *ScriptBuilder, binary string, markers []string) *Invoker {
	return &Invoker{
		fs:      fs,
		runner:  runner,
		scripts: scripts,
		binary:  binary,
		markers: markers,
	}
}

// Run writes the batch script into the workspace, executes the tool and
// classifies the outcome. A returned error is always a *model.LaunchError or
// *model.WorkspaceError; tool failures and timeouts are normal results.
func (iv *Invoker) Run(ctx context.Context, ws m.Workspace, point m.Point) (m.Invocation, m.InvocationResult, error) {
	payload, err := iv.scripts.Render(ws, point)
	if err != nil {
		return m.Invocation{}, m.InvocationResult{}, err
	}

	scriptPath := m.Path(filepath.Join(string(ws.Root), ScriptFileName))
	if err := iv.fs.WriteFile(scriptPath, payload, 0o600); err != nil {
		return m.Invocation{}, m.InvocationResult{}, &m.WorkspaceError{Path: ws.Root, Err: fmt.Errorf("write batch script: %w", err)}
	}

	inv := m.Invocation{
		Binary: iv.binary,
		Args:   []string{"-f", ScriptFileName},
		Dir:    ws.Root,
		Script: scriptPath,
	}

	slog.Info("invoking tool", "point", point, "command", inv.CommandLine(), "dir", inv.Dir)

	out := iv.runner.Run(ctx, string(ws.Root), inv.Binary, inv.Args...)
	result := iv.classify(out)

	slog.Info("tool finished", "point", point, "outcome", result.Outcome, "exit", result.ExitCode, "duration", result.Duration)

	if result.Outcome == m.OutcomeLaunch {
		return inv, result, &m.LaunchError{Binary: iv.binary, Err: out.LaunchErr}
	}

	return inv, result, nil
}

func (iv *Invoker) classify(out adapter.RunOutput) m.InvocationResult {
	result := m.InvocationResult{
		ExitCode: out.ExitCode,
		Output:   out.Output,
		Duration: out.Duration,
	}

	switch {
	case out.LaunchErr != nil:
		result.Outcome = m.OutcomeLaunch
	case out.TimedOut:
		result.Outcome = m.OutcomeTimeout
	case out.ExitCode != 0:
		result.Outcome = m.OutcomeToolFailure
	case iv.failureMarker(out.Output) != "":
		result.Outcome = m.OutcomeToolFailure
	default:
		result.Outcome = m.OutcomeSuccess
	}

	return result
}

// failureMarker returns the first configured marker found in the output.
// Some tool versions report synthesis failures without a nonzero exit.
func (iv *Invoker) failureMarker(output string) string {
	for _, marker := range iv.markers {
		if marker != "" && strings.Contains(output, marker) {
			return marker
		}
	}

	return ""
}
