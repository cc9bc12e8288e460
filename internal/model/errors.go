package model

import "fmt"

// InvalidConfigurationError reports a bad grid or sweep definition. It is
// fatal and surfaces before any point runs.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// WorkspaceError reports a filesystem or lock problem while preparing a
// point's workspace. Policy decides whether it skips the point or aborts.
type WorkspaceError struct {
	Path Path
	Err  error
}

func (e *WorkspaceError) Error() string {
	return fmt.Sprintf("workspace %s: %v", e.Path, e.Err)
}

func (e *WorkspaceError) Unwrap() error {
	return e.Err
}

// LaunchError reports that the tool binary could not be started (missing,
// not executable). Fatal: no remaining point could possibly succeed.
type LaunchError struct {
	Binary string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot launch %q: %v", e.Binary, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ArtifactMissingError reports that the tool finished but the report was not
// at its expected path. A per-point outcome, never silent.
type ArtifactMissingError struct {
	Path Path
}

func (e *ArtifactMissingError) Error() string {
	return fmt.Sprintf("artifact not found at %s", e.Path)
}
