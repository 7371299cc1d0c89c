package server

import (
	"encoding/json"
	"io"
	"math"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/workoutsync/internal/ingest"
	"github.com/claude/workoutsync/internal/models"
	"github.com/claude/workoutsync/internal/workout"
)

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	v, err := ingest.NewValidator()
	if err != nil {
		t.Fatal(err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	training := ingest.Training{FTP: 200, TargetPowerDiff: workout.DefaultTargetPowerDiff}
	return New(ingest.NewLoader(v, log), training, apiKey, log)
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

const cyclingRequest = `
ftp: 160
workout:
  name: vo2max
  steps:
    - { duration: "5:00", power: 100% }
    - - { duration: "1:00", power: 120% }
    - - { duration: "1:00", power: 120% }
`

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCompile(t *testing.T) {
	rec := post(t, newTestServer(t, ""), "/api/v1/compile", cyclingRequest)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var p models.Workout
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.WorkoutName != "vo2max" || p.SportType.SportTypeKey != "cycling" {
		t.Errorf("payload = %+v", p)
	}
	steps := p.WorkoutSegments[0].WorkoutSteps
	if len(steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(steps))
	}
	if lo, hi := *steps[0].TargetValueOne, *steps[0].TargetValueTwo; lo != 152 || hi != 168 {
		t.Errorf("corridor = [%v, %v], want [152, 168]", lo, hi)
	}
	if steps[1].Type != models.RepeatGroupType || *steps[1].NumberOfIterations != 2 {
		t.Errorf("repeat = %+v", steps[1])
	}
}

func TestCompileRunning(t *testing.T) {
	body := `
discipline: running
zones:
  easy: { type: pace, min: "6:00", max: "6:30" }
workout:
  name: easy run
  description: keep it slow
  steps:
    - { duration: 5km, target: easy, type: warmup }
`
	rec := post(t, newTestServer(t, ""), "/api/v1/compile", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var p models.Workout
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Description != "keep it slow" || p.SportType.SportTypeKey != "running" {
		t.Errorf("payload = %+v", p)
	}
	step := p.WorkoutSegments[0].WorkoutSteps[0]
	if step.StepType.StepTypeKey != "warmup" || step.EndCondition.ConditionTypeKey != "distance" || *step.EndConditionValue != 5000 {
		t.Errorf("step = %+v", step)
	}
	if step.TargetType.WorkoutTargetTypeKey != "pace.zone" || *step.TargetValueOne > *step.TargetValueTwo {
		t.Errorf("target = %+v [%v, %v]", step.TargetType, *step.TargetValueOne, *step.TargetValueTwo)
	}
}

func TestCompileErrors(t *testing.T) {
	s := newTestServer(t, "")
	tests := []struct {
		name string
		body string
		want int
	}{
		{"not yaml", "{", http.StatusBadRequest},
		{"schema violation", "workout: { name: x, steps: [ 5 ] }", http.StatusBadRequest},
		{"unknown discipline", "discipline: rowing\nworkout: { name: x, steps: [] }", http.StatusBadRequest},
		{"malformed power", "workout: { name: x, steps: [ { power: lots } ] }", http.StatusUnprocessableEntity},
		{"oversized duration", "workout: { name: x, steps: [ { power: 80%, duration: \"2000:00:00\" } ] }", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, "/api/v1/compile", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			var resp map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	body := `
workout:
  name: one hour at threshold
  steps:
    - { duration: "1:00:00", power: 100% }
`
	rec := post(t, newTestServer(t, ""), "/api/v1/load", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var load workout.Load
	if err := json.NewDecoder(rec.Body).Decode(&load); err != nil {
		t.Fatal(err)
	}
	if load.FTP != 200 || load.Seconds != 3600 {
		t.Errorf("load = %+v", load)
	}
	if math.Abs(load.NormalizedPower-200) > 0.01 || math.Abs(load.IntensityFactor-1) > 0.001 {
		t.Errorf("NP = %v, IF = %v", load.NormalizedPower, load.IntensityFactor)
	}
	if load.TrainingStressScore < 99.99 || load.TrainingStressScore > 100.01 {
		t.Errorf("TSS = %v, want 100", load.TrainingStressScore)
	}
}

func TestAPIKeyRequiredWhenConfigured(t *testing.T) {
	s := newTestServer(t, "secret")

	if rec := post(t, s, "/api/v1/compile", cyclingRequest); rec.Code != http.StatusUnauthorized {
		t.Errorf("without key: status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/compile", strings.NewReader(cyclingRequest))
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("with key: status = %d, want 200", rec.Code)
	}

	// Health stays open.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health: status = %d", rec.Code)
	}
}
