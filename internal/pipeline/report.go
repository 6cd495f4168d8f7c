package pipeline

import (
	"time"

	"github.com/ppiankov/mindfleet/internal/analytics"
	"github.com/ppiankov/mindfleet/internal/model"
	"github.com/ppiankov/mindfleet/internal/roster"
)

// BuildReport assembles a renderable snapshot. briefing may be nil.
func BuildReport(fleet string, r roster.Roster, summary model.Summary, briefing *model.Briefing, at time.Time) *model.Report {
	return &model.Report{
		Fleet:       fleet,
		GeneratedAt: at,
		Summary:     summary,
		Rows:        analytics.Rows(r.Employees()),
		Heatmap:     analytics.Heatmap(r.Employees()),
		Briefing:    briefing,
	}
}
