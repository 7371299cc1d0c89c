package ingest

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/workoutsync/internal/workout"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return NewLoader(v, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const sweetSpot = `
name: sweet spot 2x20
description: two long blocks
steps:
  - { duration: 600, power: 55% }
  - - { duration: "20:00", power: 90% }
    - { duration: "5:00", power: 50% }
  - - { duration: "20:00", power: 90% }
    - { duration: "5:00", power: 50% }
  - { power: 40% }
`

const easyRun = `
name: recovery run a
steps:
  - { duration: "10:00", target: easy, type: warmup }
  - { duration: 5km, target: easy }
`

func TestLoadWorkouts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", sweetSpot)
	writeFile(t, dir, "a.yaml", easyRun)
	writeFile(t, dir, "notes.txt", "ignored")

	defs, err := newTestLoader(t).LoadWorkouts(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "recovery run a", defs[0].Name)
	assert.Equal(t, "sweet spot 2x20", defs[1].Name)
	assert.Equal(t, "two long blocks", defs[1].Description)
	require.Len(t, defs[1].Steps, 4)
	assert.True(t, defs[1].Steps[1].Equal(defs[1].Steps[2]))
	assert.Equal(t, "600", defs[1].Steps[0].Step.Duration)
}

func TestLoadWorkoutsNoMatch(t *testing.T) {
	_, err := newTestLoader(t).LoadWorkouts(filepath.Join(t.TempDir(), "*.yaml"))
	assert.ErrorContains(t, err, "no workout files")
}

func TestParseWorkoutSchemaViolations(t *testing.T) {
	l := newTestLoader(t)
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", "steps: []\n"},
		{"missing steps", "name: x\n"},
		{"scalar step", "name: x\nsteps:\n  - 10:00\n"},
		{"unknown key", "name: x\nsteps:\n  - { duraton: 60 }\n"},
		{"not a mapping", "- a\n- b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.ParseWorkout("doc.yaml", []byte(tt.doc))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, "doc.yaml", verr.Source)
			assert.NotEmpty(t, verr.Violations)
		})
	}
}

func TestParseWorkoutWithoutValidator(t *testing.T) {
	l := NewLoader(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	def, err := l.ParseWorkout("doc", []byte(easyRun))
	require.NoError(t, err)
	assert.Equal(t, "5km", def.Steps[1].Step.Duration)

	_, err = l.ParseWorkout("doc", []byte("steps: []\n"))
	assert.ErrorContains(t, err, "name is required")
}

func TestLoadZones(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "pace.yaml", `
easy: { type: pace, min: "6:30", max: "6:00" }
threshold: { type: heart.rate, min: 165, max: 172 }
`)
	zones, err := newTestLoader(t).LoadZones(p)
	require.NoError(t, err)
	assert.Equal(t, workout.Zone{Kind: "pace", Min: "6:30", Max: "6:00"}, zones["easy"])
	assert.Equal(t, workout.Zone{Kind: "heart.rate", Min: "165", Max: "172"}, zones["threshold"])
}

func TestLoadZonesInvalid(t *testing.T) {
	p := writeFile(t, t.TempDir(), "pace.yaml", "easy: { min: 1 }\n")
	_, err := newTestLoader(t).LoadZones(p)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}
