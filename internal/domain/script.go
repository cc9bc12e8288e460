package domain

import (
	"bytes"
	"fmt"
	"text/template"

	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// Stages selects which tool stages the generated script executes.
// Synthesis always runs; the rest are individually toggleable.
type Stages struct {
	Csim   bool
	Cosim  bool
	Export bool
}

// HLSConfig is the tool-facing configuration shared by every point of a
// sweep: the entity to synthesize, the registered files, the target part and
// clock, and the macro that receives the point value.
type HLSConfig struct {
	Top         string
	Sources     []string
	Testbenches []string
	Part        string
	Clock       string
	Macro       string // preprocessor macro set to the point value, e.g. UNROLL_FACTOR
	Stages      Stages
}

// The batch script executed by the HLS tool in the workspace directory.
// Project and solution are both opened with -reset: the tool's project state
// is cumulative across invocations and must start from a clean slate.
var batchScriptTpl = template.Must(template.New("batch").Parse(
	`# GENERATED FILE, DO NOT EDIT
# Sweep point: {{ .Point }}
open_project -reset {{ .Project }}
set_top {{ .Top }}
{{- range .Sources }}
add_files {{ . }}{{ if $.Macro }} -cflags "-D{{ $.Macro }}={{ $.Value }}"{{ end }}
{{- end }}
{{- range .Testbenches }}
add_files -tb {{ . }}{{ if $.Macro }} -cflags "-D{{ $.Macro }}={{ $.Value }}"{{ end }}
{{- end }}
open_solution -reset {{ .Solution }}
set_part {{"{"}}{{ .Part }}{{"}"}}
create_clock -period {{ .Clock }} -name default
{{- if .Csim }}
csim_design
{{- end }}
csynth_design
{{- if .Cosim }}
cosim_design
{{- end }}
{{- if .Export }}
export_design -format ip_catalog
{{- end }}
exit
`))

type batchBinding struct {
	Point       string
	Project     string
	Solution    string
	Top         string
	Sources     []string
	Testbenches []string
	Macro       string
	Value       int
	Part        string
	Clock       string
	Csim        bool
	Cosim       bool
	Export      bool
}

// ScriptBuilder renders the per-point batch script for the external tool.
type ScriptBuilder struct {
	cfg HLSConfig
}

// NewScriptBuilder constructs a ScriptBuilder for the given tool config.
func NewScriptBuilder(cfg HLSConfig) (*ScriptBuilder, error) {
	if cfg.Top == "" {
		return nil, &m.InvalidConfigurationError{Reason: "top entity is empty"}
	}

	if len(cfg.Sources) == 0 {
		return nil, &m.InvalidConfigurationError{Reason: "no source files registered"}
	}

	if cfg.Part == "" {
		return nil, &m.InvalidConfigurationError{Reason: "target part is empty"}
	}

	if cfg.Clock == "" {
		return nil, &m.InvalidConfigurationError{Reason: "clock period is empty"}
	}

	return &ScriptBuilder{cfg: cfg}, nil
}

// Config returns the shared tool configuration.
func (b *ScriptBuilder) Config() HLSConfig {
	return b.cfg
}

// Render produces the script contents for one workspace/point pair.
func (b *ScriptBuilder) Render(ws m.Workspace, point m.Point) ([]byte, error) {
	binding := batchBinding{
		Point:       point.String(),
		Project:     ws.Project,
		Solution:    ws.Solution,
		Top:         b.cfg.Top,
		Sources:     b.cfg.Sources,
		Testbenches: b.cfg.Testbenches,
		Macro:       b.cfg.Macro,
		Value:       point.Value,
		Part:        b.cfg.Part,
		Clock:       b.cfg.Clock,
		Csim:        b.cfg.Stages.Csim,
		Cosim:       b.cfg.Stages.Cosim,
		Export:      b.cfg.Stages.Export,
	}

	var buf bytes.Buffer
	if err := batchScriptTpl.Execute(&buf, binding); err != nil {
		return nil, fmt.Errorf("render batch script for %s: %w", point, err)
	}

	return buf.Bytes(), nil
}
