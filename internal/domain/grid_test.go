package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsweep.dev/pkg/hlsweep/internal/domain"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		name    string
		list    string
		want    []int
		wantErr bool
	}{
		{"plain list", "1,2,4,8", []int{1, 2, 4, 8}, false},
		{"spaces tolerated", " 1, 2 ,4", []int{1, 2, 4}, false},
		{"trailing comma", "1,2,", []int{1, 2}, false},
		{"single value", "16", []int{16}, false},
		{"not an integer", "1,two,4", nil, true},
		{"empty list", "", nil, true},
		{"duplicate", "1,2,1", nil, true},
		{"zero rejected", "0,1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := domain.ParseValues("uf", tt.list)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.Values)
			assert.Equal(t, "uf", spec.Param)
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    []int
		wantErr bool
	}{
		{"inclusive stop", "1:4", []int{1, 2, 3, 4}, false},
		{"explicit step", "1:8:2", []int{1, 3, 5, 7}, false},
		{"step lands on stop", "2:8:3", []int{2, 5, 8}, false},
		{"single point range", "4:4", []int{4}, false},
		{"empty range", "8:1", nil, true},
		{"zero step", "1:8:0", nil, true},
		{"negative step", "8:1:-1", nil, true},
		{"too many parts", "1:2:3:4", nil, true},
		{"non-numeric bound", "a:8", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := domain.ParseRange("uf", tt.expr)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.Values)
		})
	}
}

func TestGrid_Stream_YieldsAllPointsInOrder(t *testing.T) {
	grid, err := domain.NewGrid(m.GridSpec{Param: "uf", Values: []int{1, 2, 4, 8}})
	require.NoError(t, err)

	var got []int
	for point := range grid.Stream(context.Background()) {
		got = append(got, point.Value)
	}

	assert.Equal(t, []int{1, 2, 4, 8}, got)
	assert.Equal(t, 4, grid.Size())
}

func TestGrid_Stream_StopsOnCancel(t *testing.T) {
	grid, err := domain.NewGrid(m.GridSpec{Param: "uf", Values: []int{1, 2, 4, 8}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	stream := grid.Stream(ctx)

	first, ok := <-stream
	require.True(t, ok)
	assert.Equal(t, 1, first.Value)

	cancel()

	// The channel holds at most one buffered point; after that it closes.
	var remaining int
	for range stream {
		remaining++
	}

	assert.LessOrEqual(t, remaining, 1)
}

func TestNewGrid_RejectsInvalidSpec(t *testing.T) {
	_, err := domain.NewGrid(m.GridSpec{Param: "uf"})

	var invalidErr *m.InvalidConfigurationError
	require.Error(t, err)
	assert.ErrorAs(t, err, &invalidErr)
}
