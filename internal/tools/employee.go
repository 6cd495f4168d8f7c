package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ppiankov/mindfleet/internal/roster"
)

// ProfileTool handles the employee_profile MCP tool.
type ProfileTool struct {
	dashboard Dashboard
}

// NewProfileTool creates a ProfileTool.
func NewProfileTool(d Dashboard) *ProfileTool {
	return &ProfileTool{dashboard: d}
}

// Definition returns the MCP tool definition for registration.
func (t *ProfileTool) Definition() mcp.Tool {
	return mcp.NewTool("employee_profile",
		mcp.WithDescription(
			"Detailed breakdown for one employee: risk, coherence between words and emotions, "+
				"resilience, profile flags and the risk/talent radar axes.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Employee id, e.g. 'emp_3'."),
		),
	)
}

// Handle processes the employee_profile tool call.
func (t *ProfileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	profile, ok := t.dashboard.Profile(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no employee with id %q", id)), nil
	}
	return jsonResult(profile)
}

// StatusTool handles the set_status MCP tool.
type StatusTool struct {
	dashboard Dashboard
}

// NewStatusTool creates a StatusTool.
func NewStatusTool(d Dashboard) *StatusTool {
	return &StatusTool{dashboard: d}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("set_status",
		mcp.WithDescription(
			"Change the follow-up status of one employee. Every indicator is recomputed, "+
				"and an addressed employee leaves the fire list.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Employee id, e.g. 'emp_1'."),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status."),
			mcp.Enum("pending", "in_process", "addressed"),
		),
	)
}

// Handle processes the set_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	raw := req.GetString("status", "")
	if raw == "" {
		return mcp.NewToolResultError("status is required"), nil
	}
	status, err := roster.ParseStatus(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prev, ok := t.dashboard.SetStatus(id, status)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no employee with id %q", id)), nil
	}

	// Names never change, so a separate lookup cannot disagree with the transition
	e, _ := t.dashboard.Roster().Find(id)
	s := t.dashboard.Summary()
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s -> %s. %s",
		e.Name, prev, status, s.DataSummary())), nil
}
