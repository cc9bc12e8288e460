package domain

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"hlsweep.dev/pkg/hlsweep/internal/adapter"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// DefaultReportPathTemplate locates the whole-design synthesis report. Tool
// versions that name sub-loop reports differently can override the template;
// the {qualifier} placeholder reproduces the loop-level convention
// {top}_{qualifier}_csynth.{ext}.
const DefaultReportPathTemplate = "{project}/{solution}/syn/report/{top}_csynth.{ext}"

// ReportConvention describes where a finished build leaves its report and
// how collected copies are named.
type ReportConvention struct {
	PathTemplate string // relative to the workspace root
	Top          string
	Qualifier    string
	Metric       string // destination prefix, e.g. "report"
	Ext          string // report extension without dot, e.g. "xml"
}

// Collector copies the expected report artifact of a finished build into the
// flat results directory under a point-encoded name.
type Collector struct {
	fs         adapter.WorkspaceFS
	resultsDir m.Path
	convention ReportConvention
}

// NewCollector constructs a Collector writing into resultsDir.
func NewCollector(fs adapter.WorkspaceFS, resultsDir m.Path, convention ReportConvention) *Collector {
	if convention.PathTemplate == "" {
		convention.PathTemplate = DefaultReportPathTemplate
	}

	return &Collector{
		fs:         fs,
		resultsDir: resultsDir,
		convention: convention,
	}
}

// Record computes the artifact paths for a workspace/point pair. Pure path
// arithmetic, no filesystem access: both sides are convention-derived.
func (c *Collector) Record(ws m.Workspace, point m.Point) m.ArtifactRecord {
	relative := strings.NewReplacer(
		"{project}", ws.Project,
		"{solution}", ws.Solution,
		"{top}", c.convention.Top,
		"{qualifier}", c.convention.Qualifier,
		"{ext}", c.convention.Ext,
	).Replace(c.convention.PathTemplate)

	destName := fmt.Sprintf("%s_%s.%s", c.convention.Metric, point.Tag(), c.convention.Ext)

	return m.ArtifactRecord{
		Source: m.Path(filepath.Join(string(ws.Root), relative)),
		Dest:   m.Path(filepath.Join(string(c.resultsDir), destName)),
	}
}

// Collect verifies the report exists and copies it into the results
// directory, overwriting any copy from a previous run. The source file is
// preserved for debugging.
func (c *Collector) Collect(ws m.Workspace, point m.Point) (m.ArtifactRecord, error) {
	record := c.Record(ws, point)

	if _, err := c.fs.Stat(record.Source); err != nil {
		slog.Warn("report missing", "point", point, "expected", record.Source)
		return record, &m.ArtifactMissingError{Path: record.Source}
	}

	if err := c.fs.MkdirAll(c.resultsDir); err != nil {
		return record, fmt.Errorf("create results dir %s: %w", c.resultsDir, err)
	}

	if err := c.fs.CopyFile(record.Source, record.Dest); err != nil {
		return record, fmt.Errorf("collect %s: %w", record.Source, err)
	}

	slog.Info("collected artifact", "point", point, "dest", record.Dest)

	return record, nil
}
