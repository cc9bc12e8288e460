package domain

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"hlsweep.dev/pkg/hlsweep/internal/adapter"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

const workspacePrefix = "sol_"

// WorkspaceManager creates and resets the isolated build directory for one
// point. Prepare destroys any previous directory of the same name before
// recreating it, mirroring the tool's own -reset semantics.
type WorkspaceManager struct {
	fs        adapter.WorkspaceFS
	buildRoot m.Path
	project   string
	solution  string
}

// NewWorkspaceManager constructs a WorkspaceManager rooted at buildRoot.
// project and solution name the tool's directories inside each workspace.
func NewWorkspaceManager(fs adapter.WorkspaceFS, buildRoot m.Path, project, solution string) *WorkspaceManager {
	return &WorkspaceManager{
		fs:        fs,
		buildRoot: buildRoot,
		project:   project,
		solution:  solution,
	}
}

// Describe derives the workspace identity for a point without touching the
// filesystem. Names are unique per point, so derived paths never collide.
func (w *WorkspaceManager) Describe(point m.Point) m.Workspace {
	name := workspacePrefix + point.Tag()

	return m.Workspace{
		Name:     name,
		Root:     m.Path(filepath.Join(string(w.buildRoot), name)),
		Project:  w.project,
		Solution: w.solution,
	}
}

// Prepare derives the workspace name from the point and resets its
// directory so every run starts from a clean slate.
func (w *WorkspaceManager) Prepare(point m.Point) (m.Workspace, error) {
	ws := w.Describe(point)

	if err := w.fs.RemoveAll(ws.Root); err != nil {
		return m.Workspace{}, &m.WorkspaceError{Path: ws.Root, Err: fmt.Errorf("reset workspace: %w", err)}
	}

	if err := w.fs.MkdirAll(ws.Root); err != nil {
		return m.Workspace{}, &m.WorkspaceError{Path: ws.Root, Err: fmt.Errorf("create workspace: %w", err)}
	}

	ws.CreatedAt = time.Now()

	slog.Debug("prepared workspace", "point", point, "root", ws.Root)

	return ws, nil
}

// Teardown releases a workspace after its artifacts have been collected.
// Build output stays on disk for debugging; only ordering matters here:
// collect before teardown.
func (w *WorkspaceManager) Teardown(ws m.Workspace) {
	slog.Debug("released workspace", "name", ws.Name, "root", ws.Root)
}
