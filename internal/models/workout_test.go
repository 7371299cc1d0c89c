package models

import (
	"encoding/json"
	"testing"
)

// TestWorkoutStepOmitsUnsetFields verifies that an executable step does not
// carry repeat-group fields and vice versa, matching the service's DTOs.
func TestWorkoutStepOmitsUnsetFields(t *testing.T) {
	secs := 300.0
	step := WorkoutStep{
		Type:              ExecutableStepType,
		StepOrder:         1,
		StepType:          &StepType{StepTypeID: 3, StepTypeKey: "interval"},
		EndCondition:      &ConditionType{ConditionTypeID: 2, ConditionTypeKey: "time"},
		EndConditionValue: &secs,
		TargetType:        &TargetType{WorkoutTargetTypeID: 1, WorkoutTargetTypeKey: "no.target"},
	}
	data, err := json.Marshal(step)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"numberOfIterations", "workoutSteps", "smartRepeat", "childStepId", "targetValueOne"} {
		if _, ok := got[key]; ok {
			t.Errorf("unexpected key %q in %s", key, data)
		}
	}
	if got["endConditionValue"] != 300.0 {
		t.Errorf("endConditionValue = %v", got["endConditionValue"])
	}
	tt, _ := got["targetType"].(map[string]any)
	if tt["workoutTargetTypeKey"] != "no.target" {
		t.Errorf("targetType = %v", got["targetType"])
	}
}

// TestWorkoutSummaryDecode verifies that list responses decode, ignoring
// fields the summary does not model.
func TestWorkoutSummaryDecode(t *testing.T) {
	body := `[{"workoutId":12,"ownerId":3,"workoutName":"long run","description":"","sportType":{"sportTypeId":1,"sportTypeKey":"running"},"updatedDate":"2026-01-02"}]`
	var list []WorkoutSummary
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].WorkoutID != 12 || list[0].SportType.SportTypeKey != "running" {
		t.Errorf("decoded = %+v", list)
	}
}
