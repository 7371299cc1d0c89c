package workout

// The remote service identifies each enumeration value by a numeric id
// and a string key; both are fixed.

// Sport is the workout discipline tag.
type Sport int

const (
	SportRunning Sport = 1
	SportCycling Sport = 2
)

func (s Sport) ID() int { return int(s) }

func (s Sport) Key() string {
	switch s {
	case SportRunning:
		return "running"
	case SportCycling:
		return "cycling"
	}
	return "other"
}

// StepType tags a compiled step.
type StepType int

const (
	StepWarmup   StepType = 1
	StepCooldown StepType = 2
	StepInterval StepType = 3
	StepRecovery StepType = 4
	StepRepeat   StepType = 6
)

func (t StepType) ID() int { return int(t) }

func (t StepType) Key() string {
	switch t {
	case StepWarmup:
		return "warmup"
	case StepCooldown:
		return "cooldown"
	case StepInterval:
		return "interval"
	case StepRecovery:
		return "recovery"
	case StepRepeat:
		return "repeat"
	}
	return "other"
}

// ConditionKind says how an interval ends.
type ConditionKind int

const (
	ConditionLapButton ConditionKind = 1
	ConditionTime      ConditionKind = 2
	ConditionDistance  ConditionKind = 3
)

func (c ConditionKind) ID() int { return int(c) }

func (c ConditionKind) Key() string {
	switch c {
	case ConditionLapButton:
		return "lap.button"
	case ConditionTime:
		return "time"
	case ConditionDistance:
		return "distance"
	}
	return "other"
}

// TargetKind says what an interval's bounds measure.
type TargetKind int

const (
	TargetNone      TargetKind = 1
	TargetPowerZone TargetKind = 2
	TargetPaceZone  TargetKind = 6
)

func (k TargetKind) ID() int { return int(k) }

func (k TargetKind) Key() string {
	switch k {
	case TargetNone:
		return "no.target"
	case TargetPowerZone:
		return "power.zone"
	case TargetPaceZone:
		return "pace.zone"
	}
	return "other"
}
