package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// SummaryStore persists the sweep summary next to the collected artifacts.
type SummaryStore interface {
	Save(path m.Path, result m.SweepResult) error
	Load(path m.Path) (m.SweepResult, error)
}

// YAMLSummaryStore stores the summary as a YAML document.
type YAMLSummaryStore struct{}

// NewYAMLSummaryStore constructs a YAMLSummaryStore.
func NewYAMLSummaryStore() *YAMLSummaryStore {
	return &YAMLSummaryStore{}
}

// Save writes the summary, creating the results directory if absent.
func (s *YAMLSummaryStore) Save(path m.Path, result m.SweepResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

// Load reads a previously saved summary.
func (s *YAMLSummaryStore) Load(path m.Path) (m.SweepResult, error) {
	var result m.SweepResult

	data, err := os.ReadFile(string(path))
	if err != nil {
		return result, fmt.Errorf("read summary: %w", err)
	}

	if err := yaml.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("unmarshal summary: %w", err)
	}

	return result, nil
}
