// Package mcp exposes workout compilation to MCP clients.
package mcp

import (
	"context"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/workoutsync/internal/ingest"
)

// New creates an MCP server with all tools and resources registered.
// training supplies the settings a request document leaves out.
func New(loader *ingest.Loader, training ingest.Training, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("workoutsync", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithInstructions("workoutsync compiles YAML workout definitions into structured workouts. Use compile_workout to preview the steps and targets of a workout and training_load to estimate its TSS, NP and IF. The training_settings resource shows the default FTP and zones."),
	)

	h := &handlers{loader: loader, training: training, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolCompileWorkout, Handler: h.compileWorkout},
		server.ServerTool{Tool: toolTrainingLoad, Handler: h.trainingLoad},
	)
	s.AddResources(
		server.ServerResource{Resource: resTrainingSettings, Handler: h.trainingSettings},
	)

	return s
}

// Serve runs s over stdio until ctx is cancelled or stdin closes.
func Serve(ctx context.Context, s *server.MCPServer) error {
	return server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	loader   *ingest.Loader
	training ingest.Training
	log      *slog.Logger
}
