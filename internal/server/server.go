// Package server wires the fleet dashboard into an MCP server.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ppiankov/mindfleet/internal/tools"
)

// Version is set at build time via ldflags
var Version = "dev"

// New creates the MCP server with every fleet tool registered
func New(d tools.Dashboard) *server.MCPServer {
	s := server.NewMCPServer(
		"mindfleet",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	summary := tools.NewSummaryTool(d)
	s.AddTool(summary.Definition(), summary.Handle)

	fire := tools.NewFireListTool(d)
	s.AddTool(fire.Definition(), fire.Handle)

	search := tools.NewSearchTool(d)
	s.AddTool(search.Definition(), search.Handle)

	profile := tools.NewProfileTool(d)
	s.AddTool(profile.Definition(), profile.Handle)

	status := tools.NewStatusTool(d)
	s.AddTool(status.Definition(), status.Handle)

	briefing := tools.NewBriefingTool(d)
	s.AddTool(briefing.Definition(), briefing.Handle)

	return s
}

// Serve runs the server over stdio until the client disconnects
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const instructions = `mindfleet reports the emotional well-being of a field workforce.
Start with fleet_summary, then fire_list for employees who need a call today.
Use employee_profile before contacting someone and set_status once they have been addressed.`
