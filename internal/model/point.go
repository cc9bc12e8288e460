// Package model defines the data structures for a synthesis parameter sweep.
package model

import "fmt"

// Path represents a file system path.
type Path string

// Point is one assignment of the sweep variable, e.g. uf=4.
// Points are immutable once the grid has been enumerated.
type Point struct {
	Param string `yaml:"param"`
	Value int    `yaml:"value"`
}

// Tag returns the name fragment that encodes the point, e.g. "uf4".
// Tags are unique within a valid grid, so every name derived from a tag
// (workspace, artifact) is collision free.
func (p Point) Tag() string {
	return fmt.Sprintf("%s%d", p.Param, p.Value)
}

func (p Point) String() string {
	return fmt.Sprintf("%s=%d", p.Param, p.Value)
}

// GridSpec declares the finite, caller-supplied set of points to explore.
type GridSpec struct {
	Param  string
	Values []int
}

// Validate checks the grid definition before any run starts.
func (g GridSpec) Validate() error {
	if g.Param == "" {
		return &InvalidConfigurationError{Reason: "sweep parameter name is empty"}
	}

	if len(g.Values) == 0 {
		return &InvalidConfigurationError{Reason: "sweep grid is empty"}
	}

	seen := make(map[int]bool, len(g.Values))

	for _, v := range g.Values {
		if v <= 0 {
			return &InvalidConfigurationError{Reason: fmt.Sprintf("sweep value %d is not positive", v)}
		}

		if seen[v] {
			return &InvalidConfigurationError{Reason: fmt.Sprintf("duplicate sweep value %d", v)}
		}

		seen[v] = true
	}

	return nil
}

// Points materializes the grid in declaration order.
func (g GridSpec) Points() []Point {
	points := make([]Point, 0, len(g.Values))
	for _, v := range g.Values {
		points = append(points, Point{Param: g.Param, Value: v})
	}

	return points
}
