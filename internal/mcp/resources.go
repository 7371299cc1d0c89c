package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

var resTrainingSettings = mcp.NewResource(
	"workoutsync://training_settings",
	"Training Settings",
	mcp.WithResourceDescription("Default FTP, power corridor tolerance and pace zones used when a request leaves them out"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) trainingSettings(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(map[string]any{
		"ftp":               h.training.FTP,
		"target_power_diff": h.training.TargetPowerDiff,
		"zones":             h.training.Zones,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
