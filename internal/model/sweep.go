package model

import "time"

// PointStatus is the per-point state machine:
// Pending -> Preparing -> Running -> Collecting -> {Done | Failed}.
type PointStatus string

const (
	StatusPending    PointStatus = "pending"
	StatusPreparing  PointStatus = "preparing"
	StatusRunning    PointStatus = "running"
	StatusCollecting PointStatus = "collecting"
	StatusDone       PointStatus = "done"
	StatusFailed     PointStatus = "failed"
)

// Terminal reports whether the status is final.
func (s PointStatus) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// CanTransition validates a state machine step. Failed is reachable from any
// non-terminal state; the happy path is strictly ordered.
func (s PointStatus) CanTransition(to PointStatus) bool {
	if s.Terminal() {
		return false
	}

	if to == StatusFailed {
		return true
	}

	switch s {
	case StatusPending:
		return to == StatusPreparing
	case StatusPreparing:
		return to == StatusRunning
	case StatusRunning:
		return to == StatusCollecting
	case StatusCollecting:
		return to == StatusDone
	default:
		return false
	}
}

// FailureKind distinguishes why a point failed.
type FailureKind string

const (
	FailureNone      FailureKind = ""
	FailureWorkspace FailureKind = "workspace"
	FailureTool      FailureKind = "tool"
	FailureTimeout   FailureKind = "timeout"
	FailureArtifact  FailureKind = "artifact"
)

// PointResult is the recorded outcome for one point.
type PointResult struct {
	Point    Point         `yaml:"point"`
	Status   PointStatus   `yaml:"status"`
	Failure  FailureKind   `yaml:"failure,omitempty"`
	Artifact Path          `yaml:"artifact,omitempty"`
	Output   string        `yaml:"output,omitempty"` // tail of tool output for failed points
	Duration time.Duration `yaml:"duration"`
}

// SweepResult maps every processed point to its outcome. Entries accumulate
// as the sweep progresses and the struct is treated as immutable once
// finalized. Cancelled sweeps keep the entries for the points that started.
type SweepResult struct {
	Param      string        `yaml:"param"`
	Entries    []PointResult `yaml:"entries"`
	StartedAt  time.Time     `yaml:"started_at"`
	FinishedAt time.Time     `yaml:"finished_at"`
}

// Succeeded counts points that reached Done.
func (r SweepResult) Succeeded() int {
	n := 0

	for _, e := range r.Entries {
		if e.Status == StatusDone {
			n++
		}
	}

	return n
}

// Failed counts points that ended Failed.
func (r SweepResult) Failed() int {
	return len(r.Entries) - r.Succeeded()
}

// AllDone reports whether every recorded point succeeded.
func (r SweepResult) AllDone() bool {
	return r.Failed() == 0
}
