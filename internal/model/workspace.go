package model

import "time"

// Workspace is the isolated build directory and project identity for one
// point. The external tool mutates project state in place, so a workspace is
// never shared between points and is reset (destroyed and recreated) on
// prepare.
type Workspace struct {
	Name      string // derived from the point, e.g. "sol_uf4"
	Root      Path   // <build-root>/<Name>
	Project   string // HLS project directory created by the tool under Root
	Solution  string // HLS solution directory under the project
	CreatedAt time.Time
}
