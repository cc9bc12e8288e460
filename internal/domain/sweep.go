package domain

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"hlsweep.dev/pkg/hlsweep/internal/controller"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// diagnosticLines bounds how much tool output a failed point carries into
// the summary.
const diagnosticLines = 20

// SweepOptions control scheduling and the failure policy.
type SweepOptions struct {
	Parallelism int
	FailFast    bool
}

// Controller drives the whole sweep: for each grid point, prepare the
// workspace, run the tool, collect the artifact, record the outcome. A
// point's failure never aborts the remaining grid unless FailFast is set;
// only launch-level errors end the sweep early.
type Controller struct {
	workspaces *WorkspaceManager
	invoker    *Invoker
	collector  *Collector
	ui         controller.UI
}

// NewController wires the sweep stages together.
func NewController(workspaces *WorkspaceManager, invoker *Invoker, collector *Collector, ui controller.UI) *Controller {
	return &Controller{
		workspaces: workspaces,
		invoker:    invoker,
		collector:  collector,
		ui:         ui,
	}
}

// Run processes the grid and returns the finalized result. Cancelled sweeps
// return the entries for every point that started; unstarted points never
// appear. The returned error is nil unless the sweep aborted on a fatal
// condition (launch error).
func (c *Controller) Run(ctx context.Context, grid *Grid, opts SweepOptions) (m.SweepResult, error) {
	result := m.SweepResult{Param: grid.Spec().Param, StartedAt: time.Now()}

	slog.Info("sweep started", "param", grid.Spec().Param, "points", grid.Size(), "parallelism", opts.Parallelism)

	var err error
	if opts.Parallelism > 1 {
		err = c.runParallel(ctx, grid, opts, &result)
	} else {
		err = c.runSerial(ctx, grid, opts, &result)
	}

	result.FinishedAt = time.Now()

	slog.Info("sweep finished", "succeeded", result.Succeeded(), "failed", result.Failed())

	return result, err
}

// runSerial executes one point to completion before starting the next, in
// grid order. This is the default: the tool's workspace state is not safe
// for concurrent access within one workspace identity.
func (c *Controller) runSerial(ctx context.Context, grid *Grid, opts SweepOptions, result *m.SweepResult) error {
	for point := range grid.Stream(ctx) {
		entry, fatal := c.runPoint(ctx, point)

		result.Entries = append(result.Entries, entry)
		c.ui.PointCompleted(ctx, entry)

		if fatal != nil {
			return fatal
		}

		if opts.FailFast && entry.Status == m.StatusFailed {
			slog.Warn("stopping sweep after first failure", "point", point)
			return nil
		}
	}

	return nil
}

// runParallel fans points out over a bounded worker pool. Every point owns a
// distinct workspace, so the only shared resource is the results directory,
// which the per-point naming keeps collision free. A single aggregator
// goroutine owns the result slice.
func (c *Controller) runParallel(ctx context.Context, grid *Grid, opts SweepOptions, result *m.SweepResult) error {
	entries := make(chan m.PointResult)
	done := make(chan struct{})

	go func() {
		defer close(done)

		for entry := range entries {
			result.Entries = append(result.Entries, entry)
			c.ui.PointCompleted(ctx, entry)
		}
	}()

	var (
		mu       sync.Mutex
		abortErr error
		stopped  atomic.Bool
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Parallelism)

	for point := range grid.Stream(groupCtx) {
		if stopped.Load() || groupCtx.Err() != nil {
			break
		}

		currentPoint := point

		group.Go(func() error {
			entry, fatal := c.runPoint(groupCtx, currentPoint)

			entries <- entry

			if fatal != nil {
				mu.Lock()
				if abortErr == nil {
					abortErr = fatal
				}
				mu.Unlock()

				return fatal
			}

			if opts.FailFast && entry.Status == m.StatusFailed {
				stopped.Store(true)
			}

			return nil
		})
	}

	groupErr := group.Wait()

	close(entries)
	<-done

	sortEntries(grid, result)

	if abortErr != nil {
		return abortErr
	}

	if groupErr != nil && !errors.Is(groupErr, context.Canceled) && !errors.Is(groupErr, context.DeadlineExceeded) {
		return groupErr
	}

	return nil
}

// runPoint walks one point through prepare -> run -> collect. The sequence
// is strictly ordered and non-reentrant. A non-nil fatal error aborts the
// sweep; every other failure is recorded in the entry and the sweep moves on.
func (c *Controller) runPoint(ctx context.Context, point m.Point) (entry m.PointResult, fatal error) {
	entry = m.PointResult{Point: point, Status: m.StatusPending}
	started := time.Now()

	defer func() { entry.Duration = time.Since(started) }()

	c.ui.PointStarted(ctx, point)
	advance(&entry, m.StatusPreparing)

	ws, err := c.workspaces.Prepare(point)
	if err != nil {
		slog.Error("workspace preparation failed", "point", point, "error", err)
		failPoint(&entry, m.FailureWorkspace, err.Error())

		return entry, nil
	}

	defer c.workspaces.Teardown(ws)

	advance(&entry, m.StatusRunning)

	_, res, err := c.invoker.Run(ctx, ws, point)
	if err != nil {
		var launchErr *m.LaunchError
		if errors.As(err, &launchErr) {
			slog.Error("tool launch failed, aborting sweep", "point", point, "error", err)
			failPoint(&entry, m.FailureTool, err.Error())

			return entry, err
		}

		failPoint(&entry, m.FailureWorkspace, err.Error())

		return entry, nil
	}

	switch res.Outcome {
	case m.OutcomeTimeout:
		failPoint(&entry, m.FailureTimeout, outputTail(res.Output, diagnosticLines))
		return entry, nil
	case m.OutcomeToolFailure:
		failPoint(&entry, m.FailureTool, outputTail(res.Output, diagnosticLines))
		return entry, nil
	case m.OutcomeSuccess, m.OutcomeLaunch:
		// Success falls through to collection; Launch was returned as an
		// error above.
	}

	advance(&entry, m.StatusCollecting)

	record, err := c.collector.Collect(ws, point)
	if err != nil {
		failPoint(&entry, m.FailureArtifact, err.Error())
		return entry, nil
	}

	entry.Artifact = record.Dest
	advance(&entry, m.StatusDone)

	return entry, nil
}

// advance performs a validated state machine step for the entry.
func advance(entry *m.PointResult, to m.PointStatus) {
	if !entry.Status.CanTransition(to) {
		slog.Error("invalid point transition", "point", entry.Point, "from", entry.Status, "to", to)
	}

	entry.Status = to
}

func failPoint(entry *m.PointResult, kind m.FailureKind, detail string) {
	advance(entry, m.StatusFailed)
	entry.Failure = kind
	entry.Output = detail
}

// sortEntries restores grid order after a parallel run.
func sortEntries(grid *Grid, result *m.SweepResult) {
	order := make(map[int]int, grid.Size())
	for i, p := range grid.Points() {
		order[p.Value] = i
	}

	sort.SliceStable(result.Entries, func(i, j int) bool {
		return order[result.Entries[i].Point.Value] < order[result.Entries[j].Point.Value]
	})
}

// outputTail keeps the last n lines of tool output for diagnostics.
func outputTail(output string, n int) string {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return ""
	}

	lines := strings.Split(output, "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}

	return strings.Join(lines[len(lines)-n:], "\n")
}
