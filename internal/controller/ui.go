// Package controller provides output adapters for displaying sweep progress
// and results.
package controller

import (
	"context"
	"os"

	"golang.org/x/term"

	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// UI defines the interface for displaying sweep progress. Implementations
// can use different output methods (simple text, TUI).
type UI interface {
	Start(ctx context.Context, total int) error
	PointStarted(ctx context.Context, point m.Point)
	PointCompleted(ctx context.Context, entry m.PointResult)
	DisplaySummary(ctx context.Context, result m.SweepResult, resultsDir m.Path)
	Close(ctx context.Context)
}

// IsTTY reports whether the file is an interactive terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
