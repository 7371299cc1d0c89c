package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const (
	workoutSchemaURL = "https://workoutsync.local/schemas/workout.json"
	zonesSchemaURL   = "https://workoutsync.local/schemas/zones.json"
)

// Durations may be written as bare seconds, so numbers are accepted
// wherever a literal is.
const workoutSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://workoutsync.local/schemas/workout.json",
  "type": "object",
  "required": ["name", "steps"],
  "properties": {
    "name": { "type": "string", "minLength": 1 },
    "description": { "type": "string" },
    "steps": { "$ref": "#/$defs/tree" }
  },
  "$defs": {
    "literal": { "type": ["string", "number"] },
    "tree": {
      "type": "array",
      "items": {
        "oneOf": [
          { "$ref": "#/$defs/step" },
          { "$ref": "#/$defs/tree" }
        ]
      }
    },
    "step": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "duration": { "$ref": "#/$defs/literal" },
        "power": { "$ref": "#/$defs/literal" },
        "target": { "type": "string" },
        "type": { "type": "string" },
        "description": { "type": "string" }
      }
    }
  }
}`

const zonesSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://workoutsync.local/schemas/zones.json",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["type", "min", "max"],
    "additionalProperties": false,
    "properties": {
      "type": { "type": "string", "minLength": 1 },
      "min": { "type": ["string", "number"] },
      "max": { "type": ["string", "number"] }
    }
  }
}`

// ValidationError lists the schema violations of one document.
type ValidationError struct {
	Source     string
	Violations []string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("%s: %s", e.Source, e.Violations[0])
	}
	return fmt.Sprintf("%s: %d schema violations: %s", e.Source, len(e.Violations), strings.Join(e.Violations, "; "))
}

// Validator checks workout and zone documents against their JSON schemas
// before they are decoded. It is safe for concurrent use.
type Validator struct {
	workout *jsonschema.Schema
	zones   *jsonschema.Schema
}

// NewValidator compiles the document schemas.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	for url, src := range map[string]string{
		workoutSchemaURL: workoutSchemaJSON,
		zonesSchemaURL:   zonesSchemaJSON,
	} {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("unmarshal schema %s: %w", url, err)
		}
		if err := c.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("add schema resource %s: %w", url, err)
		}
	}

	w, err := c.Compile(workoutSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile workout schema: %w", err)
	}
	z, err := c.Compile(zonesSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile zones schema: %w", err)
	}
	return &Validator{workout: w, zones: z}, nil
}

// ValidateWorkout validates a YAML (or JSON) workout document.
func (v *Validator) ValidateWorkout(source string, data []byte) error {
	return validate(v.workout, source, data)
}

// ValidateZones validates a YAML (or JSON) zone table document.
func (v *Validator) ValidateZones(source string, data []byte) error {
	return validate(v.zones, source, data)
}

func validate(s *jsonschema.Schema, source string, data []byte) error {
	doc, err := toJSONValue(data)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	err = s.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%s: %w", source, err)
	}
	violations := collectViolations(verr)
	if len(violations) == 0 {
		violations = []string{verr.Error()}
	}
	return &ValidationError{Source: source, Violations: violations}
}

// toJSONValue decodes YAML and re-encodes it as JSON so that numbers
// become json.Number, which is what the schema library expects.
func toJSONValue(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	return jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
}

func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}
	var out []string
	for _, c := range verr.Causes {
		out = append(out, collectViolations(c)...)
	}
	return out
}
