package workout

import (
	"strings"

	"github.com/claude/workoutsync/internal/units"
)

// DefaultTargetPowerDiff is the default half-width of a power corridor,
// as a fraction of the resolved power.
const DefaultTargetPowerDiff = 0.05

// Discipline resolves discipline-specific parts of a workout. The only
// implementations are Effort and Locomotion.
type Discipline interface {
	Sport() Sport
	ResolveEndCondition(s Step) (EndCondition, error)
	ResolveTarget(s Step) (Target, error)
	StepType(s Step) StepType
	describe(def Definition) (string, error)
}

// Effort is a power-based discipline (cycling): targets are watt
// corridors relative to FTP.
type Effort struct {
	FTP             float64
	TargetPowerDiff float64
}

// NewEffort returns an Effort discipline with the default tolerance.
func NewEffort(ftp float64) Effort {
	return Effort{FTP: ftp, TargetPowerDiff: DefaultTargetPowerDiff}
}

func (Effort) Sport() Sport { return SportCycling }

func (Effort) StepType(Step) StepType { return StepInterval }

func (e Effort) ResolveEndCondition(s Step) (EndCondition, error) {
	if s.Duration == "" {
		return EndCondition{Kind: ConditionLapButton}, nil
	}
	d, err := units.ParseDuration(s.Duration)
	if err != nil {
		return EndCondition{}, err
	}
	return EndCondition{Kind: ConditionTime, Value: floatPtr(d.Seconds())}, nil
}

func (e Effort) ResolveTarget(s Step) (Target, error) {
	if s.Power == "" {
		return NoTarget, nil
	}
	p, err := units.ParsePower(s.Power)
	if err != nil {
		return Target{}, err
	}
	return Target{
		Kind: TargetPowerZone,
		Low:  floatPtr(float64(p.ToWatts(e.FTP, -e.TargetPowerDiff))),
		High: floatPtr(float64(p.ToWatts(e.FTP, e.TargetPowerDiff))),
	}, nil
}

func (e Effort) describe(def Definition) (string, error) {
	load, err := ComputeLoad(def.Steps, e.FTP)
	if err != nil {
		return "", err
	}
	return load.Summary(), nil
}

// Locomotion is a pace-based discipline (running): targets are named
// zones looked up in a zone table.
type Locomotion struct {
	Zones ZoneTable
}

func (Locomotion) Sport() Sport { return SportRunning }

func (Locomotion) StepType(s Step) StepType {
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case "warmup":
		return StepWarmup
	case "cooldown":
		return StepCooldown
	case "recovery":
		return StepRecovery
	}
	return StepInterval
}

func (Locomotion) ResolveEndCondition(s Step) (EndCondition, error) {
	switch {
	case s.Duration == "":
	case units.IsClock(s.Duration):
		d, err := units.ParseDuration(s.Duration)
		if err != nil {
			return EndCondition{}, err
		}
		return EndCondition{Kind: ConditionTime, Value: floatPtr(d.Seconds())}, nil
	case units.HasDistanceUnit(s.Duration):
		m, err := units.ParseDistance(s.Duration)
		if err != nil {
			return EndCondition{}, err
		}
		return EndCondition{Kind: ConditionDistance, Value: floatPtr(m)}, nil
	}
	return EndCondition{Kind: ConditionLapButton}, nil
}

// ResolveTarget never fails for a missing or unknown zone; such steps
// run without a target.
func (l Locomotion) ResolveTarget(s Step) (Target, error) {
	if s.Target == "" {
		return NoTarget, nil
	}
	zone, ok := l.Zones[s.Target]
	if !ok {
		return NoTarget, nil
	}
	lo, err := zoneBound(zone, zone.Min)
	if err != nil {
		return Target{}, err
	}
	hi, err := zoneBound(zone, zone.Max)
	if err != nil {
		return Target{}, err
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return Target{Kind: TargetPaceZone, Low: floatPtr(lo), High: floatPtr(hi)}, nil
}

func zoneBound(z Zone, v string) (float64, error) {
	if strings.EqualFold(z.Kind, "pace") {
		return units.ParsePace(v)
	}
	return units.ParseNumber(v)
}

func (Locomotion) describe(def Definition) (string, error) {
	return def.Description, nil
}
