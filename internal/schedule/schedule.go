// Package schedule turns a training plan into calendar dates.
package schedule

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Plan is a training plan file.
//
//	start: 2026-03-02
//	every: "0 0 * * 1,3,5"   # optional
//	workouts:
//	  - name: vo2max
//	    day: 0
//
// Without every, each workout is placed day days after start. With every,
// workouts take successive fire dates of the cron expression, starting on
// or after start, in list order.
type Plan struct {
	Start    string `yaml:"start"`
	Every    string `yaml:"every"`
	Workouts []Item `yaml:"workouts"`
}

// Item is one planned workout.
type Item struct {
	Name string `yaml:"name"`
	Day  int    `yaml:"day"`
}

// Entry is a workout placed on a date.
type Entry struct {
	Name string
	Date time.Time
}

// Load reads a plan from a YAML file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan %s: %w", path, err)
	}
	return &p, nil
}

// Resolve returns the dated entries of the plan.
func (p *Plan) Resolve() ([]Entry, error) {
	start, err := time.ParseInLocation(time.DateOnly, p.Start, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("plan start %q: %w", p.Start, err)
	}
	for i, it := range p.Workouts {
		if it.Name == "" {
			return nil, fmt.Errorf("plan workout %d: name is required", i+1)
		}
		if it.Day < 0 {
			return nil, fmt.Errorf("plan workout %q: day must not be negative", it.Name)
		}
	}

	entries := make([]Entry, 0, len(p.Workouts))
	if p.Every == "" {
		for _, it := range p.Workouts {
			entries = append(entries, Entry{Name: it.Name, Date: start.AddDate(0, 0, it.Day)})
		}
		return entries, nil
	}

	sched, err := cron.ParseStandard(p.Every)
	if err != nil {
		return nil, fmt.Errorf("plan every %q: %w", p.Every, err)
	}
	// Next is strictly after its argument.
	t := start.Add(-time.Nanosecond)
	for _, it := range p.Workouts {
		t = sched.Next(t)
		if t.IsZero() {
			return nil, fmt.Errorf("plan every %q: no further dates", p.Every)
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		entries = append(entries, Entry{Name: it.Name, Date: day})
	}
	return entries, nil
}
