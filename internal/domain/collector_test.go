package domain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsweep.dev/pkg/hlsweep/internal/adapter"
	"hlsweep.dev/pkg/hlsweep/internal/domain"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

func testConvention() domain.ReportConvention {
	return domain.ReportConvention{
		Top:    "top",
		Metric: "report",
		Ext:    "xml",
	}
}

func TestCollector_Record_DefaultTemplate(t *testing.T) {
	collector := domain.NewCollector(adapter.NewLocalWorkspaceFS(), "/tmp/results", testConvention())

	record := collector.Record(testWorkspace(), m.Point{Param: "uf", Value: 4})

	assert.Equal(t, m.Path("/tmp/build/sol_uf4/proj/solution1/syn/report/top_csynth.xml"), record.Source)
	assert.Equal(t, m.Path("/tmp/results/report_uf4.xml"), record.Dest)
}

func TestCollector_Record_CustomTemplate(t *testing.T) {
	convention := testConvention()
	convention.PathTemplate = "{project}/{solution}/syn/report/{top}_{qualifier}_csynth.{ext}"
	convention.Qualifier = "loop1"

	collector := domain.NewCollector(adapter.NewLocalWorkspaceFS(), "/tmp/results", convention)

	record := collector.Record(testWorkspace(), m.Point{Param: "uf", Value: 2})

	assert.Equal(t, m.Path("/tmp/build/sol_uf4/proj/solution1/syn/report/top_loop1_csynth.xml"), record.Source)
}

func TestCollector_Record_DestinationsAreDistinct(t *testing.T) {
	collector := domain.NewCollector(adapter.NewLocalWorkspaceFS(), "/tmp/results", testConvention())

	seen := make(map[m.Path]bool)

	for _, v := range []int{1, 2, 4, 8} {
		record := collector.Record(testWorkspace(), m.Point{Param: "uf", Value: v})
		assert.False(t, seen[record.Dest], "dest %s derived twice", record.Dest)
		seen[record.Dest] = true
	}
}

func TestCollector_Collect_CopiesReport(t *testing.T) {
	buildRoot := t.TempDir()
	resultsDir := filepath.Join(t.TempDir(), "results")

	ws := m.Workspace{
		Name:     "sol_uf1",
		Root:     m.Path(filepath.Join(buildRoot, "sol_uf1")),
		Project:  "proj",
		Solution: "solution1",
	}

	reportDir := filepath.Join(string(ws.Root), "proj", "solution1", "syn", "report")
	require.NoError(t, os.MkdirAll(reportDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(reportDir, "top_csynth.xml"), []byte("<report/>"), 0o600))

	collector := domain.NewCollector(adapter.NewLocalWorkspaceFS(), m.Path(resultsDir), testConvention())

	record, err := collector.Collect(ws, m.Point{Param: "uf", Value: 1})
	require.NoError(t, err)

	copied, err := os.ReadFile(string(record.Dest))
	require.NoError(t, err)
	assert.Equal(t, "<report/>", string(copied))

	// The source stays in place for debugging.
	_, err = os.Stat(string(record.Source))
	assert.NoError(t, err)
}

func TestCollector_Collect_OverwritesPreviousCopy(t *testing.T) {
	buildRoot := t.TempDir()
	resultsDir := t.TempDir()

	ws := m.Workspace{
		Name:     "sol_uf2",
		Root:     m.Path(filepath.Join(buildRoot, "sol_uf2")),
		Project:  "proj",
		Solution: "solution1",
	}

	reportDir := filepath.Join(string(ws.Root), "proj", "solution1", "syn", "report")
	require.NoError(t, os.MkdirAll(reportDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(reportDir, "top_csynth.xml"), []byte("fresh"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(resultsDir, "report_uf2.xml"), []byte("stale"), 0o600))

	collector := domain.NewCollector(adapter.NewLocalWorkspaceFS(), m.Path(resultsDir), testConvention())

	record, err := collector.Collect(ws, m.Point{Param: "uf", Value: 2})
	require.NoError(t, err)

	copied, err := os.ReadFile(string(record.Dest))
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(copied))
}

func TestCollector_Collect_MissingReport(t *testing.T) {
	buildRoot := t.TempDir()

	ws := m.Workspace{
		Name:     "sol_uf8",
		Root:     m.Path(filepath.Join(buildRoot, "sol_uf8")),
		Project:  "proj",
		Solution: "solution1",
	}
	require.NoError(t, os.MkdirAll(string(ws.Root), 0o750))

	collector := domain.NewCollector(adapter.NewLocalWorkspaceFS(), m.Path(t.TempDir()), testConvention())

	_, err := collector.Collect(ws, m.Point{Param: "uf", Value: 8})

	var missingErr *m.ArtifactMissingError
	require.Error(t, err)
	assert.ErrorAs(t, err, &missingErr)
}
