package controller

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer. It prints one
// line per point event and a table at the end, suitable for logs and CI.
type SimpleUI struct {
	cmd   *cobra.Command
	total int
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start announces the sweep size.
func (s *SimpleUI) Start(ctx context.Context, total int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.total = total
	s.printf("Sweeping %d point(s)\n", total)

	return nil
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// PointStarted prints the point that is about to run.
func (s *SimpleUI) PointStarted(ctx context.Context, point m.Point) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Starting point %s\n", point)
}

// PointCompleted prints the point outcome and, for failures, the captured
// diagnostic tail.
func (s *SimpleUI) PointCompleted(ctx context.Context, entry m.PointResult) {
	// Completed entries are printed even when the sweep was cancelled, so
	// partial runs still account for every started point.
	if entry.Status == m.StatusDone {
		s.printf("Completed point %s -> %s (%s)\n", entry.Point, entry.Status, entry.Artifact)
		return
	}

	s.printf("Completed point %s -> %s(%s)\n", entry.Point, entry.Status, entry.Failure)

	if entry.Output != "" {
		s.printf("%s\n", entry.Output)
	}
}

// DisplaySummary prints the final per-point table and totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, result m.SweepResult, resultsDir m.Path) {
	s.printf("\n%s", renderSummaryTable(result))
	s.printf("\nResults directory: %s\n", resultsDir)
}

// DisplayPlan prints the dry-run table mapping points to workspaces and
// artifact destinations.
func (s *SimpleUI) DisplayPlan(rows []PlanRow) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Point", "Workspace", "Artifact"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, row := range rows {
		table.Append([]string{row.Point.String(), row.Workspace, string(row.Artifact)})
	}

	table.Render()

	s.printf("%s", buf.String())
}

// PlanRow is one line of the dry-run plan.
type PlanRow struct {
	Point     m.Point
	Workspace string
	Artifact  m.Path
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderSummaryTable(result m.SweepResult) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Point", "Status", "Failure", "Artifact", "Duration"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, entry := range result.Entries {
		table.Append([]string{
			entry.Point.String(),
			string(entry.Status),
			string(entry.Failure),
			string(entry.Artifact),
			entry.Duration.Round(time.Millisecond).String(),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Points %d", len(result.Entries)),
		fmt.Sprintf("ok %d", result.Succeeded()),
		fmt.Sprintf("failed %d", result.Failed()),
		"",
		result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond).String(),
	})

	table.Render()

	return buf.String()
}
