package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AnalysisKind selects one of the shipped analyses by name.
type AnalysisKind int

const (
	analysisKindInvalid AnalysisKind = iota

	AnalysisKindFuncIndex
	AnalysisKindOpCount
	AnalysisKindExports
)

var analysisKindValueMap = map[AnalysisKind]string{
	AnalysisKindFuncIndex: "funcindex",
	AnalysisKindOpCount:   "opcount",
	AnalysisKindExports:   "exports",
}

func (k AnalysisKind) String() string {
	v, ok := analysisKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}

	return v
}

// UnmarshalText for setting values with configs, CLI, etc.
func (k *AnalysisKind) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for key, v := range analysisKindValueMap {
		if v == text {
			*k = key
			return nil
		}
	}

	return fmt.Errorf("unknown analysis kind %q", text)
}

// Config is the pipeline description the run command consumes.
type Config struct {
	// Analyses to compute over the loaded packages, in order.
	Analyses []AnalysisKind `yaml:"analyses"`

	// Preserve declares which analyses survive the invalidation round
	// performed after the computation. An empty list preserves nothing.
	Preserve []AnalysisKind `yaml:"preserve"`

	// Tests includes test packages into the loaded tree.
	Tests bool `yaml:"tests"`
}

// LoadConfig reads a pipeline description from the given path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(cfg.Analyses) == 0 {
		return nil, fmt.Errorf("config %s: no analyses requested", path)
	}

	return &cfg, nil
}
