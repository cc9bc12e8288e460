package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty uses default", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "InFo", slog.LevelInfo},
		{"numeric", "-4", slog.LevelDebug},
		{"garbage uses default", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, "proj", viper.GetString(toolProjectKey))
	assert.Equal(t, "solution1", viper.GetString(toolSolutionKey))
	assert.Equal(t, "UNROLL_FACTOR", viper.GetString(toolMacroKey))
	assert.Equal(t, []string{"ERROR:"}, viper.GetStringSlice(toolMarkersKey))
	assert.Equal(t, "report", viper.GetString(reportMetricKey))
	assert.Equal(t, "xml", viper.GetString(reportExtKey))
	assert.Equal(t, "sweep_summary.yaml", SummaryFileName)
}
