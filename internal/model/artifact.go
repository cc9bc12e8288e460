package model

// ArtifactRecord pairs the expected report path inside a workspace with its
// destination in the flat results directory. Both sides are deterministic
// functions of the workspace and point, never the outcome of a search.
type ArtifactRecord struct {
	Source Path `yaml:"source"`
	Dest   Path `yaml:"dest"`
}
