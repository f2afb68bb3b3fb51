// Package mcp exposes window positioning as Model Context Protocol tools
// over stdio.
package mcp

import (
	"context"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/hyprgrid/internal/logging"
	"github.com/1broseidon/hyprgrid/internal/placement"
)

const ServerName = "hyprgrid"

// ServerVersion is reported to MCP clients; the CLI overrides it at build time.
var ServerVersion = "0.1.0"

// Server is the MCP server for grid positioning.
type Server struct {
	mcpServer *mcpsdk.Server
	orch      *placement.Orchestrator
	log       *logging.Logger

	// mu serialises tool calls; the orchestrator is single-threaded.
	mu sync.Mutex
}

// NewServer creates an MCP server driving orch.
func NewServer(orch *placement.Orchestrator, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{
		orch: orch,
		log:  log.With("component", "mcp"),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("MCP server listening on stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_position",
		Description: "Move the focused window to a named preset position. Pass ref as preset:code, or preset and code separately. A bare code uses the default preset. Returns the pixel rect applied and any warnings.",
	}, s.handleApplyPosition)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_grid_position",
		Description: "Move the focused window to an explicit grid span (x, y, width, height in cells) or, with centered and 0 < scale < 1, to a centered box covering scale of the screen.",
	}, s.handleApplyGridPosition)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reset_window_state",
		Description: "Toggle the focused window's floating state twice and reload compositor rules, clearing stuck sizing state.",
	}, s.handleResetWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_presets",
		Description: "List the configured grid, presets and their position codes.",
	}, s.handleListPresets)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "test_all_positions",
		Description: "Cycle the focused window through every position of a preset in code order, pausing between steps. Reports each step's outcome.",
	}, s.handleTestAllPositions)
}
