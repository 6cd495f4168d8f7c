package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ppiankov/mindfleet/internal/analytics"
	"github.com/ppiankov/mindfleet/internal/model"
)

// SummaryTool handles the fleet_summary MCP tool.
type SummaryTool struct {
	dashboard Dashboard
}

// NewSummaryTool creates a SummaryTool.
func NewSummaryTool(d Dashboard) *SummaryTool {
	return &SummaryTool{dashboard: d}
}

// Definition returns the MCP tool definition for registration.
func (t *SummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("fleet_summary",
		mcp.WithDescription(
			"Headline well-being indicators for the whole fleet: global risk (0-100) and its band, "+
				"fire list size, incoherence rate, cohesion index, resilience ranking, "+
				"anxiety by manager and anger by hour.",
		),
	)
}

type summaryResult struct {
	Fleet       string        `json:"fleet"`
	RiskBand    string        `json:"risk_band"`
	DataSummary string        `json:"data_summary"`
	Summary     model.Summary `json:"summary"`
}

// Handle processes the fleet_summary tool call.
func (t *SummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s := t.dashboard.Summary()
	return jsonResult(summaryResult{
		Fleet:       t.dashboard.Fleet(),
		RiskBand:    analytics.RiskBand(s.GlobalRisk),
		DataSummary: s.DataSummary(),
		Summary:     s,
	})
}

// FireListTool handles the fire_list MCP tool.
type FireListTool struct {
	dashboard Dashboard
}

// NewFireListTool creates a FireListTool.
func NewFireListTool(d Dashboard) *FireListTool {
	return &FireListTool{dashboard: d}
}

// Definition returns the MCP tool definition for registration.
func (t *FireListTool) Definition() mcp.Tool {
	return mcp.NewTool("fire_list",
		mcp.WithDescription(
			"Employees that need urgent intervention: risk above 70% and status still pending. "+
				"Each entry carries contact details, an alert severity on a 0-10 scale and the acute signals behind it.",
		),
	)
}

// Handle processes the fire_list tool call.
func (t *FireListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fire := t.dashboard.Summary().FireList
	if len(fire) == 0 {
		return mcp.NewToolResultText("No unattended critical cases."), nil
	}
	return jsonResult(fire)
}

// SearchTool handles the search_fleet MCP tool.
type SearchTool struct {
	dashboard Dashboard
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(d Dashboard) *SearchTool {
	return &SearchTool{dashboard: d}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_fleet",
		mcp.WithDescription("List fleet table rows whose employee or manager name contains the query, case-insensitively."),
		mcp.WithString("query",
			mcp.Description("Substring of an employee or manager name. Leave empty to list everyone."),
		),
	)
}

// Handle processes the search_fleet tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows := t.dashboard.Search(req.GetString("query", ""))
	if len(rows) == 0 {
		return mcp.NewToolResultText("No employees match."), nil
	}
	return jsonResult(rows)
}
