package upload

import (
	"github.com/claude/workoutsync/internal/models"
	"github.com/claude/workoutsync/internal/workout"
)

// ToPayload converts a compiled workout to the service's wire format. All
// steps go into a single segment carrying the workout's sport.
func ToPayload(w *workout.Workout) models.Workout {
	sport := models.SportType{SportTypeID: w.Sport.ID(), SportTypeKey: w.Sport.Key()}
	return models.Workout{
		WorkoutID:   w.ID,
		OwnerID:     w.OwnerID,
		WorkoutName: w.Name,
		Description: w.Description,
		SportType:   sport,
		WorkoutSegments: []models.WorkoutSegment{
			{
				SegmentOrder: 1,
				SportType:    sport,
				WorkoutSteps: convertSteps(w.Steps),
			},
		},
	}
}

func convertSteps(nodes []workout.CompiledNode) []models.WorkoutStep {
	out := make([]models.WorkoutStep, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *workout.Interval:
			out = append(out, convertInterval(n))
		case *workout.RepeatGroup:
			out = append(out, convertRepeat(n))
		}
	}
	return out
}

func convertInterval(iv *workout.Interval) models.WorkoutStep {
	return models.WorkoutStep{
		Type:        models.ExecutableStepType,
		StepOrder:   iv.Order,
		StepType:    stepType(iv.Type),
		ChildStepID: iv.ChildID,
		Description: iv.Description,
		EndCondition: &models.ConditionType{
			ConditionTypeID:  iv.EndCondition.Kind.ID(),
			ConditionTypeKey: iv.EndCondition.Kind.Key(),
		},
		EndConditionValue: iv.EndCondition.Value,
		TargetType: &models.TargetType{
			WorkoutTargetTypeID:  iv.Target.Kind.ID(),
			WorkoutTargetTypeKey: iv.Target.Kind.Key(),
		},
		TargetValueOne: iv.Target.Low,
		TargetValueTwo: iv.Target.High,
	}
}

func convertRepeat(g *workout.RepeatGroup) models.WorkoutStep {
	childID := g.ChildID
	iterations := g.Iterations
	smart := false
	return models.WorkoutStep{
		Type:               models.RepeatGroupType,
		StepOrder:          g.Order,
		StepType:           stepType(workout.StepRepeat),
		ChildStepID:        &childID,
		NumberOfIterations: &iterations,
		WorkoutSteps:       convertSteps(g.Steps),
		SmartRepeat:        &smart,
	}
}

func stepType(t workout.StepType) *models.StepType {
	return &models.StepType{StepTypeID: t.ID(), StepTypeKey: t.Key()}
}
