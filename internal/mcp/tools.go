package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/workoutsync/internal/ingest"
	"github.com/claude/workoutsync/internal/upload"
	"github.com/claude/workoutsync/internal/workout"
)

const documentHelp = `YAML or JSON request document:
discipline: effort | locomotion (default effort)
ftp: 250                      # effort only, defaults to the configured FTP
target_power_diff: 0.05       # effort only
zones: {easy: {type: pace, min: "6:30", max: "6:00"}}   # locomotion only
workout: {name: ..., description: ..., steps: [...]}
Steps are mappings with duration, power, target, type and description, or nested lists for repeated blocks.`

var toolCompileWorkout = mcp.NewTool("compile_workout",
	mcp.WithDescription("Compile a workout definition into the structured workout that would be uploaded: ordered steps, repeat groups, end conditions and target corridors."),
	mcp.WithString("document", mcp.Required(), mcp.Description(documentHelp)),
)

var toolTrainingLoad = mcp.NewTool("training_load",
	mcp.WithDescription("Estimate the training load of a power-based workout: normalized power, intensity factor and training stress score."),
	mcp.WithString("document", mcp.Required(), mcp.Description(documentHelp)),
)

func (h *handlers) compileWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError("document parameter is required"), nil
	}
	r, err := h.loader.ParseRequest([]byte(doc))
	if err != nil {
		return mcp.NewToolResultError(describeError(err)), nil
	}
	d, err := r.ResolveDiscipline(h.training)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	w, err := workout.NewCompiler(d).Compile(r.Workout, nil)
	if err != nil {
		h.log.Debug("mcp compile_workout", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(upload.ToPayload(w))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) trainingLoad(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError("document parameter is required"), nil
	}
	r, err := h.loader.ParseRequest([]byte(doc))
	if err != nil {
		return mcp.NewToolResultError(describeError(err)), nil
	}
	ftp, err := r.ReferencePower(h.training)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	load, err := workout.ComputeLoad(r.Workout.Steps, ftp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"load":    load,
		"summary": load.Summary(),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// describeError spells out every schema violation so that the caller can
// fix the document in one go.
func describeError(err error) string {
	var verr *ingest.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	msg := "invalid workout document:"
	for _, v := range verr.Violations {
		msg += "\n- " + v
	}
	return msg
}
