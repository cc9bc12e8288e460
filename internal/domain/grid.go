// Package domain implements the sweep logic: grid enumeration, workspace
// lifecycle, tool invocation, artifact collection and the sweep controller.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// Grid produces the ordered sequence of configuration points. The sequence
// is finite, restartable and streamed lazily so large grids never need to be
// held point-by-point by the caller.
type Grid struct {
	spec m.GridSpec
}

// NewGrid validates the spec and returns a Grid. Empty grids, duplicate
// values and non-positive values are rejected before any run starts.
func NewGrid(spec m.GridSpec) (*Grid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &Grid{spec: spec}, nil
}

// Spec returns the validated grid definition.
func (g *Grid) Spec() m.GridSpec {
	return g.spec
}

// Size returns the number of points in the grid.
func (g *Grid) Size() int {
	return len(g.spec.Values)
}

// Points materializes the grid in declaration order.
func (g *Grid) Points() []m.Point {
	return g.spec.Points()
}

// Stream yields points lazily in declaration order. The channel closes when
// the grid is exhausted or ctx is cancelled.
func (g *Grid) Stream(ctx context.Context) <-chan m.Point {
	ch := make(chan m.Point, 1)

	go func() {
		defer close(ch)

		for _, point := range g.spec.Points() {
			select {
			case <-ctx.Done():
				slog.Debug("grid streaming cancelled", "param", g.spec.Param)
				return
			case ch <- point:
			}
		}
	}()

	return ch
}

// ParseValues builds a grid spec from an explicit comma-separated list,
// e.g. "1,2,4,8".
func ParseValues(param, list string) (m.GridSpec, error) {
	spec := m.GridSpec{Param: param}

	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		v, err := strconv.Atoi(field)
		if err != nil {
			return spec, &m.InvalidConfigurationError{Reason: fmt.Sprintf("sweep value %q is not an integer", field)}
		}

		spec.Values = append(spec.Values, v)
	}

	return spec, spec.Validate()
}

// ParseRange builds a grid spec from a "start:stop:step" expression with an
// inclusive stop, e.g. "1:8:1". Step defaults to 1 when omitted.
func ParseRange(param, expr string) (m.GridSpec, error) {
	spec := m.GridSpec{Param: param}

	parts := strings.Split(expr, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return spec, &m.InvalidConfigurationError{Reason: fmt.Sprintf("range %q is not start:stop[:step]", expr)}
	}

	numbers := make([]int, 0, len(parts))

	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return spec, &m.InvalidConfigurationError{Reason: fmt.Sprintf("range bound %q is not an integer", part)}
		}

		numbers = append(numbers, v)
	}

	start, stop := numbers[0], numbers[1]

	step := 1
	if len(numbers) == 3 {
		step = numbers[2]
	}

	if step <= 0 {
		return spec, &m.InvalidConfigurationError{Reason: fmt.Sprintf("range step %d is not positive", step)}
	}

	for v := start; v <= stop; v += step {
		spec.Values = append(spec.Values, v)
	}

	return spec, spec.Validate()
}
