// Package ingest loads authored workout and zone files.
package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/claude/workoutsync/internal/workout"
)

// Loader reads workout definitions and zone tables from YAML files,
// validating each document first when a Validator is set.
type Loader struct {
	validator *Validator
	log       *slog.Logger
}

// NewLoader creates a Loader. v may be nil to skip schema validation.
func NewLoader(v *Validator, log *slog.Logger) *Loader {
	return &Loader{validator: v, log: log}
}

// LoadWorkouts reads every file matching the glob pattern, in lexical
// order. A pattern that matches nothing is an error.
func (l *Loader) LoadWorkouts(pattern string) ([]workout.Definition, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no workout files match %q", pattern)
	}

	defs := make([]workout.Definition, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		def, err := l.ParseWorkout(p, data)
		if err != nil {
			return nil, err
		}
		l.log.Debug("loaded workout", "file", p, "name", def.Name)
		defs = append(defs, def)
	}
	return defs, nil
}

// ParseWorkout decodes one workout document. source names the document in
// error messages.
func (l *Loader) ParseWorkout(source string, data []byte) (workout.Definition, error) {
	if l.validator != nil {
		if err := l.validator.ValidateWorkout(source, data); err != nil {
			return workout.Definition{}, err
		}
	}
	var def workout.Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return workout.Definition{}, fmt.Errorf("parsing %s: %w", source, err)
	}
	if def.Name == "" {
		return workout.Definition{}, fmt.Errorf("%s: workout name is required", source)
	}
	return def, nil
}

// LoadZones reads a zone table file.
func (l *Loader) LoadZones(path string) (workout.ZoneTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return l.ParseZones(path, data)
}

// ParseZones decodes a zone table document.
func (l *Loader) ParseZones(source string, data []byte) (workout.ZoneTable, error) {
	if l.validator != nil {
		if err := l.validator.ValidateZones(source, data); err != nil {
			return nil, err
		}
	}
	zones := workout.ZoneTable{}
	if err := yaml.Unmarshal(data, &zones); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	return zones, nil
}
