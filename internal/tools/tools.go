// Package tools exposes the fleet dashboard as MCP tools.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ppiankov/mindfleet/internal/model"
	"github.com/ppiankov/mindfleet/internal/roster"
)

// Dashboard is the view of the fleet the tools read and mutate
type Dashboard interface {
	Fleet() string
	Roster() roster.Roster
	Summary() model.Summary
	Briefing() model.Briefing
	Search(term string) []model.EmployeeRow
	Profile(id string) (model.Profile, bool)
	SetStatus(id string, status model.Status) (model.Status, bool)
	RefreshBriefing() <-chan struct{}
}

// jsonResult renders v as an indented JSON text result
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
