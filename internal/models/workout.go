package models

// Step type discriminators used by the workout service.
const (
	ExecutableStepType = "ExecutableStepDTO"
	RepeatGroupType    = "RepeatGroupDTO"
)

// SportType identifies the workout's sport.
type SportType struct {
	SportTypeID  int    `json:"sportTypeId"`
	SportTypeKey string `json:"sportTypeKey"`
}

// StepType identifies the kind of a step.
type StepType struct {
	StepTypeID  int    `json:"stepTypeId"`
	StepTypeKey string `json:"stepTypeKey"`
}

// ConditionType identifies how a step ends.
type ConditionType struct {
	ConditionTypeID  int    `json:"conditionTypeId"`
	ConditionTypeKey string `json:"conditionTypeKey"`
}

// TargetType identifies what a step's target values measure.
type TargetType struct {
	WorkoutTargetTypeID  int    `json:"workoutTargetTypeId"`
	WorkoutTargetTypeKey string `json:"workoutTargetTypeKey"`
}

// WorkoutStep is either an executable step or a repeat group, told apart
// by Type.
type WorkoutStep struct {
	Type        string    `json:"type"`
	StepOrder   int       `json:"stepOrder"`
	StepType    *StepType `json:"stepType,omitempty"`
	ChildStepID *int      `json:"childStepId,omitempty"`
	Description string    `json:"description,omitempty"`

	EndCondition      *ConditionType `json:"endCondition,omitempty"`
	EndConditionValue *float64       `json:"endConditionValue,omitempty"`
	TargetType        *TargetType    `json:"targetType,omitempty"`
	TargetValueOne    *float64       `json:"targetValueOne,omitempty"`
	TargetValueTwo    *float64       `json:"targetValueTwo,omitempty"`

	NumberOfIterations *int          `json:"numberOfIterations,omitempty"`
	WorkoutSteps       []WorkoutStep `json:"workoutSteps,omitempty"`
	SmartRepeat        *bool         `json:"smartRepeat,omitempty"`
}

// WorkoutSegment groups steps of one sport.
type WorkoutSegment struct {
	SegmentOrder int           `json:"segmentOrder"`
	SportType    SportType     `json:"sportType"`
	WorkoutSteps []WorkoutStep `json:"workoutSteps"`
}

// Workout is the payload sent to create or update a workout.
type Workout struct {
	WorkoutID       *int64           `json:"workoutId,omitempty"`
	OwnerID         *int64           `json:"ownerId,omitempty"`
	WorkoutName     string           `json:"workoutName"`
	Description     string           `json:"description,omitempty"`
	SportType       SportType        `json:"sportType"`
	WorkoutSegments []WorkoutSegment `json:"workoutSegments"`
}

// WorkoutSummary is the subset of a remote workout returned by list calls.
type WorkoutSummary struct {
	WorkoutID   int64      `json:"workoutId"`
	OwnerID     int64      `json:"ownerId"`
	WorkoutName string     `json:"workoutName"`
	Description string     `json:"description"`
	SportType   *SportType `json:"sportType,omitempty"`
}

