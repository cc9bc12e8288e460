package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

var (
	tuiTitleStyle   = lipgloss.NewStyle().Bold(true)
	tuiDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	tuiFailedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tuiRunningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// TUI implements UI using Bubble Tea for interactive runs. Long synthesis
// sweeps get a live progress bar instead of a scrolling log.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, total int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.done = make(chan struct{})
	t.program = tea.NewProgram(newSweepModel(total), tea.WithOutput(t.output))

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			fmt.Fprintf(t.output, "progress display error: %v\n", err)
		}
	}()

	return nil
}

// PointStarted marks a point as in flight.
func (t *TUI) PointStarted(_ context.Context, point m.Point) {
	t.program.Send(pointStartedMsg(point))
}

// PointCompleted records a finished point.
func (t *TUI) PointCompleted(_ context.Context, entry m.PointResult) {
	t.program.Send(pointDoneMsg(entry))
}

// DisplaySummary stops the live view and prints the final table beneath it.
func (t *TUI) DisplaySummary(ctx context.Context, result m.SweepResult, resultsDir m.Path) {
	t.Close(ctx)

	fmt.Fprintf(t.output, "\n%s", renderSummaryTable(result))
	fmt.Fprintf(t.output, "\nResults directory: %s\n", resultsDir)
}

// Close shuts the program down and waits for the terminal to be restored.
func (t *TUI) Close(_ context.Context) {
	t.once.Do(func() {
		if t.program == nil {
			return
		}

		t.program.Send(sweepDoneMsg{})
		<-t.done
	})
}

type (
	pointStartedMsg m.Point
	pointDoneMsg    m.PointResult
	sweepDoneMsg    struct{}
)

type sweepModel struct {
	total   int
	bar     progress.Model
	running []m.Point
	entries []m.PointResult
}

func newSweepModel(total int) sweepModel {
	return sweepModel{
		total: total,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
}

func (sm sweepModel) Init() tea.Cmd {
	return nil
}

func (sm sweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 0 {
			sm.bar.Width = width
		}

		return sm, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return sm, tea.Quit
		}

		return sm, nil

	case pointStartedMsg:
		sm.running = append(sm.running, m.Point(msg))
		return sm, nil

	case pointDoneMsg:
		entry := m.PointResult(msg)
		sm.running = removePoint(sm.running, entry.Point)
		sm.entries = append(sm.entries, entry)

		return sm, nil

	case sweepDoneMsg:
		return sm, tea.Quit
	}

	return sm, nil
}

func (sm sweepModel) View() string {
	var b strings.Builder

	b.WriteString(tuiTitleStyle.Render("hlsweep"))
	b.WriteString("\n\n")

	fraction := 0.0
	if sm.total > 0 {
		fraction = float64(len(sm.entries)) / float64(sm.total)
	}

	b.WriteString(sm.bar.ViewAs(fraction))
	fmt.Fprintf(&b, "  %d/%d\n\n", len(sm.entries), sm.total)

	for _, entry := range sm.entries {
		if entry.Status == m.StatusDone {
			fmt.Fprintf(&b, "  %s %s\n", tuiDoneStyle.Render("done  "), entry.Point)
		} else {
			fmt.Fprintf(&b, "  %s %s (%s)\n", tuiFailedStyle.Render("failed"), entry.Point, entry.Failure)
		}
	}

	for _, point := range sm.running {
		fmt.Fprintf(&b, "  %s %s\n", tuiRunningStyle.Render("run   "), point)
	}

	return b.String()
}

func removePoint(points []m.Point, point m.Point) []m.Point {
	kept := points[:0]

	for _, p := range points {
		if p != point {
			kept = append(kept, p)
		}
	}

	return kept
}
