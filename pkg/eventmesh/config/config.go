// Package config loads eventmesh settings from files and the
// environment.
//
// Settings describe the host-facing knobs of a router or handler:
// source identifier, default execution cost, and the optional journal
// location. They intentionally exclude anything per-contract - schemas
// and version maps are code, not configuration.
package config

import (
	"github.com/caarlos0/env/v11"
)

// Settings are the host-facing eventmesh knobs.
type Settings struct {
	// Source is the component's source identifier.
	Source string `yaml:"source" json:"source" env:"EVENTMESH_SOURCE"`

	// ExecutionUnits is the default cost stamped onto outbound events.
	ExecutionUnits float64 `yaml:"executionunits" json:"executionunits" env:"EVENTMESH_EXECUTION_UNITS"`

	// JournalPath is the SQLite journal location; empty disables the
	// journal.
	JournalPath string `yaml:"journal_path" json:"journal_path" env:"EVENTMESH_JOURNAL_PATH"`
}

// FromEnv reads settings from EVENTMESH_* environment variables.
func FromEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Merge overlays other onto s: non-zero fields of other win.
// Use to apply environment overrides on top of file settings.
func (s Settings) Merge(other Settings) Settings {
	if other.Source != "" {
		s.Source = other.Source
	}
	if other.ExecutionUnits != 0 {
		s.ExecutionUnits = other.ExecutionUnits
	}
	if other.JournalPath != "" {
		s.JournalPath = other.JournalPath
	}
	return s
}
