package ingest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/claude/workoutsync/internal/workout"
)

// Training holds the athlete settings used when a request leaves them out.
type Training struct {
	FTP             float64
	TargetPowerDiff float64
	Zones           workout.ZoneTable
}

// Request is a self-contained compile request, as accepted by the preview
// API and the MCP tools:
//
//	discipline: effort        # or locomotion; cycling/running are aliases
//	ftp: 250
//	target_power_diff: 0.05
//	zones: { easy: { type: pace, min: "6:30", max: "6:00" } }
//	workout: { name: ..., steps: [...] }
type Request struct {
	Discipline      string
	FTP             float64
	TargetPowerDiff *float64
	Zones           workout.ZoneTable
	Workout         workout.Definition
}

type rawRequest struct {
	Discipline      string            `yaml:"discipline"`
	FTP             float64           `yaml:"ftp"`
	TargetPowerDiff *float64          `yaml:"target_power_diff"`
	Zones           workout.ZoneTable `yaml:"zones"`
	Workout         yaml.Node         `yaml:"workout"`
}

// ParseRequest decodes a YAML or JSON request document. The embedded
// workout is validated like a workout file.
func (l *Loader) ParseRequest(data []byte) (*Request, error) {
	var raw rawRequest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing request: %w", err)
	}
	if raw.Workout.Kind == 0 {
		return nil, fmt.Errorf("request: workout is required")
	}
	wdata, err := yaml.Marshal(&raw.Workout)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	def, err := l.ParseWorkout("workout", wdata)
	if err != nil {
		return nil, err
	}
	return &Request{
		Discipline:      raw.Discipline,
		FTP:             raw.FTP,
		TargetPowerDiff: raw.TargetPowerDiff,
		Zones:           raw.Zones,
		Workout:         def,
	}, nil
}

// ResolveDiscipline picks the discipline named by the request, filling
// missing settings from defaults. An empty discipline means effort.
func (r *Request) ResolveDiscipline(defaults Training) (workout.Discipline, error) {
	switch strings.ToLower(r.Discipline) {
	case "", "effort", "cycling":
		ftp, err := r.ReferencePower(defaults)
		if err != nil {
			return nil, err
		}
		diff := defaults.TargetPowerDiff
		if r.TargetPowerDiff != nil {
			diff = *r.TargetPowerDiff
		}
		if diff < 0 {
			return nil, fmt.Errorf("target_power_diff must not be negative")
		}
		return workout.Effort{FTP: ftp, TargetPowerDiff: diff}, nil
	case "locomotion", "running":
		zones := r.Zones
		if zones == nil {
			zones = defaults.Zones
		}
		return workout.Locomotion{Zones: zones}, nil
	}
	return nil, fmt.Errorf("unknown discipline %q", r.Discipline)
}

// ReferencePower returns the request's FTP, or the default one.
func (r *Request) ReferencePower(defaults Training) (float64, error) {
	ftp := r.FTP
	if ftp == 0 {
		ftp = defaults.FTP
	}
	if ftp <= 0 {
		return 0, fmt.Errorf("ftp must be positive")
	}
	return ftp, nil
}
