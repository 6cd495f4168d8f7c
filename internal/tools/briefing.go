package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// BriefingTool handles the executive_briefing MCP tool.
type BriefingTool struct {
	dashboard Dashboard
}

// NewBriefingTool creates a BriefingTool.
func NewBriefingTool(d Dashboard) *BriefingTool {
	return &BriefingTool{dashboard: d}
}

// Definition returns the MCP tool definition for registration.
func (t *BriefingTool) Definition() mcp.Tool {
	return mcp.NewTool("executive_briefing",
		mcp.WithDescription(
			"Three-point executive briefing generated from the current indicators. "+
				"Returns the latest briefing, which may be a placeholder while one is being generated.",
		),
		mcp.WithBoolean("refresh",
			mcp.Description("Request a new briefing and wait for it instead of returning the latest one."),
		),
	)
}

// Handle processes the executive_briefing tool call.
func (t *BriefingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if req.GetBool("refresh", false) {
		select {
		case <-t.dashboard.RefreshBriefing():
		case <-ctx.Done():
			return mcp.NewToolResultError("briefing refresh cancelled: " + ctx.Err().Error()), nil
		}
	}

	b := t.dashboard.Briefing()

	var sb strings.Builder
	sb.WriteString(b.Text)
	if b.Provider != "" {
		sb.WriteString("\n\nSource: " + b.Provider)
		if b.Model != "" {
			sb.WriteString(" (" + b.Model + ")")
		}
	}
	if b.Fallback {
		sb.WriteString("\n\nNote: placeholder text, no generated briefing is available yet.")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
