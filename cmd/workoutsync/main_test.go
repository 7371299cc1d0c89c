package main

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDropEmpty(t *testing.T) {
	var in any
	raw := `{"workoutId":1,"description":null,"steps":[{"a":null},{"b":2}],"tags":[],"meta":{}}`
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"workoutId": 1.0,
		"steps":     []any{map[string]any{"b": 2.0}},
	}
	if got := dropEmpty(in); !reflect.DeepEqual(got, want) {
		t.Errorf("dropEmpty = %#v, want %#v", got, want)
	}
}

func TestCommandsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range commands {
		if seen[c.name] {
			t.Errorf("duplicate command %q", c.name)
		}
		seen[c.name] = true
		if c.run == nil {
			t.Errorf("command %q has no run func", c.name)
		}
	}
}
