package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsweep.dev/pkg/hlsweep/internal/adapter"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

func TestReportCmd_RendersSavedSummary(t *testing.T) {
	resetGridFlags()

	resultsDir := t.TempDir()

	saved := m.SweepResult{
		Param: "uf",
		Entries: []m.PointResult{
			{Point: m.Point{Param: "uf", Value: 1}, Status: m.StatusDone, Artifact: "report_uf1.xml"},
			{Point: m.Point{Param: "uf", Value: 8}, Status: m.StatusFailed, Failure: m.FailureTimeout},
		},
	}

	store := adapter.NewYAMLSummaryStore()
	require.NoError(t, store.Save(m.Path(filepath.Join(resultsDir, SummaryFileName)), saved))

	out, err := executeRoot(t, "report", "--results-dir", resultsDir)
	require.NoError(t, err)

	assert.Contains(t, out, "uf=1")
	assert.Contains(t, out, "uf=8")
	assert.Contains(t, out, "timeout")
	assert.Contains(t, out, "ok 1")
	assert.Contains(t, out, "failed 1")
}

func TestReportCmd_MissingSummary(t *testing.T) {
	resetGridFlags()

	_, err := executeRoot(t, "report", "--results-dir", t.TempDir())

	assert.Error(t, err)
}
