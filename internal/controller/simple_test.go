package controller_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsweep.dev/pkg/hlsweep/internal/controller"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

func newBufferedUI() (*controller.SimpleUI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	return controller.NewSimpleUI(cmd), buf
}

func TestSimpleUI_Start(t *testing.T) {
	ui, buf := newBufferedUI()

	require.NoError(t, ui.Start(context.Background(), 4))

	assert.Contains(t, buf.String(), "Sweeping 4 point(s)")
}

func TestSimpleUI_Start_CancelledContext(t *testing.T) {
	ui, buf := newBufferedUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, ui.Start(ctx, 4))
	assert.Empty(t, buf.String())
}

func TestSimpleUI_PointCompleted_Done(t *testing.T) {
	ui, buf := newBufferedUI()

	ui.PointCompleted(context.Background(), m.PointResult{
		Point:    m.Point{Param: "uf", Value: 4},
		Status:   m.StatusDone,
		Artifact: "results/report_uf4.xml",
	})

	out := buf.String()
	assert.Contains(t, out, "uf=4")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "results/report_uf4.xml")
}

func TestSimpleUI_PointCompleted_FailedShowsDiagnostics(t *testing.T) {
	ui, buf := newBufferedUI()

	ui.PointCompleted(context.Background(), m.PointResult{
		Point:   m.Point{Param: "uf", Value: 8},
		Status:  m.StatusFailed,
		Failure: m.FailureTool,
		Output:  "ERROR: unroll limit exceeded",
	})

	out := buf.String()
	assert.Contains(t, out, "failed(tool)")
	assert.Contains(t, out, "ERROR: unroll limit exceeded")
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	ui, buf := newBufferedUI()

	started := time.Now()
	result := m.SweepResult{
		Param: "uf",
		Entries: []m.PointResult{
			{Point: m.Point{Param: "uf", Value: 1}, Status: m.StatusDone, Artifact: "results/report_uf1.xml"},
			{Point: m.Point{Param: "uf", Value: 2}, Status: m.StatusFailed, Failure: m.FailureTimeout},
		},
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
	}

	ui.DisplaySummary(context.Background(), result, "results")

	out := buf.String()
	assert.Contains(t, out, "uf=1")
	assert.Contains(t, out, "uf=2")
	assert.Contains(t, out, "timeout")
	assert.Contains(t, out, "Points 2")
	assert.Contains(t, out, "ok 1")
	assert.Contains(t, out, "failed 1")
	assert.Contains(t, out, "Results directory: results")
}

func TestSimpleUI_DisplayPlan(t *testing.T) {
	ui, buf := newBufferedUI()

	ui.DisplayPlan([]controller.PlanRow{
		{Point: m.Point{Param: "uf", Value: 1}, Workspace: "sol_uf1", Artifact: "results/report_uf1.xml"},
		{Point: m.Point{Param: "uf", Value: 8}, Workspace: "sol_uf8", Artifact: "results/report_uf8.xml"},
	})

	out := buf.String()
	assert.Contains(t, out, "sol_uf1")
	assert.Contains(t, out, "sol_uf8")
	assert.Contains(t, out, "report_uf8.xml")
}
