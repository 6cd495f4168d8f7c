package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ppiankov/mindfleet/internal/analytics"
	"github.com/ppiankov/mindfleet/internal/model"
)

// Renderer writes reports as JSON, Markdown or a terminal summary
type Renderer struct {
	includeRows bool
}

// NewRenderer creates a renderer; includeRows adds the fleet table to Markdown
func NewRenderer(includeRows bool) *Renderer {
	return &Renderer{includeRows: includeRows}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// RenderMarkdown writes the report as Markdown
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(report)), 0644)
}

// Markdown renders the report body
func (r *Renderer) Markdown(report *model.Report) string {
	s := report.Summary
	var b strings.Builder

	fmt.Fprintf(&b, "# Fleet well-being report: %s\n\n", report.Fleet)
	fmt.Fprintf(&b, "_Generated %s for %d employees._\n\n", report.GeneratedAt.Format("2006-01-02 15:04 MST"), s.RosterSize)

	b.WriteString("## Key indicators\n\n")
	b.WriteString("| Indicator | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Global risk | %.1f / 100 (%s) |\n", s.GlobalRisk, analytics.RiskBand(s.GlobalRisk))
	fmt.Fprintf(&b, "| Fire list | %d |\n", len(s.FireList))
	fmt.Fprintf(&b, "| Incoherence rate | %d%% |\n", s.IncoherenceRate)
	fmt.Fprintf(&b, "| Cohesion index | %.0f |\n\n", math.Round(s.CohesionIndex))

	if len(s.Signals) > 0 {
		b.WriteString("## Signals\n\n")
		for _, sig := range s.Signals {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", sig.Type, sig.Severity, sig.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Fire list\n\n")
	if len(s.FireList) == 0 {
		b.WriteString("No unattended critical cases.\n\n")
	} else {
		b.WriteString("| Employee | Manager | Zone | Phone | Risk | Severity | Tags |\n|---|---|---|---|---|---|---|\n")
		for _, f := range s.FireList {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %.0f%% | %.1f | %s |\n",
				f.Name, f.Manager, f.Zone, f.Phone, f.Risk*100, f.Severity, strings.Join(f.Tags, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Resilience hall of fame\n\n")
	for i, e := range s.ResilienceRanking {
		fmt.Fprintf(&b, "%d. %s (ratio %.2f)\n", i+1, e.Name, e.Ratio)
	}
	b.WriteString("\n")

	b.WriteString("## Anxiety by manager\n\n")
	b.WriteString("| Manager | Reports | Anxiety |\n|---|---|---|\n")
	for _, m := range s.ManagerAnxiety {
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", m.Manager, m.Reports, m.Anxiety)
	}
	b.WriteString("\n")

	b.WriteString("## Anger by hour\n\n")
	b.WriteString("| Hour | Employees | Anger |\n|---|---|---|\n")
	for _, h := range s.HourlyAnger {
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", h.Hour, h.Employees, h.Anger)
	}
	b.WriteString("\n")

	if r.includeRows && len(report.Rows) > 0 {
		b.WriteString("## Fleet\n\n")
		b.WriteString("| Employee | Manager | Zone | Status | Score |\n|---|---|---|---|---|\n")
		for _, row := range report.Rows {
			score := fmt.Sprintf("%.1f", row.Score)
			if row.HighRisk {
				score += " (high)"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", row.Name, row.Manager, row.Zone, row.Status, score)
		}
		b.WriteString("\n")
	}

	if r.includeRows && len(report.Heatmap) > 0 {
		cols := analytics.HeatmapColumns()
		b.WriteString("## Signal heatmap\n\n")
		b.WriteString("| Employee | Zone |")
		for _, c := range cols {
			fmt.Fprintf(&b, " %s |", c.Signal)
		}
		b.WriteString("\n|---|---|" + strings.Repeat("---|", len(cols)) + "\n")
		for _, row := range report.Heatmap {
			fmt.Fprintf(&b, "| %s | %s |", row.Name, row.Zone)
			for _, c := range row.Cells {
				fmt.Fprintf(&b, " %.0f |", c.Value)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if report.Briefing != nil {
		b.WriteString("## Executive briefing\n\n")
		b.WriteString(report.Briefing.Text)
		b.WriteString("\n")
		if report.Briefing.Provider != "" {
			fmt.Fprintf(&b, "\n_Source: %s %s_\n", report.Briefing.Provider, report.Briefing.Model)
		}
	}

	return b.String()
}

// RenderTerminal prints a compact summary for the console
func (r *Renderer) RenderTerminal(w io.Writer, report *model.Report) error {
	s := report.Summary
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Fleet:\t%s (%d employees)\n", report.Fleet, s.RosterSize)
	fmt.Fprintf(tw, "Global risk:\t%.1f/100 (%s)\n", s.GlobalRisk, analytics.RiskBand(s.GlobalRisk))
	fmt.Fprintf(tw, "Fire list:\t%d\n", len(s.FireList))
	fmt.Fprintf(tw, "Incoherence:\t%d%%\n", s.IncoherenceRate)
	fmt.Fprintf(tw, "Cohesion:\t%.0f\n", math.Round(s.CohesionIndex))

	names := make([]string, 0, len(s.ResilienceRanking))
	for _, e := range s.ResilienceRanking {
		names = append(names, fmt.Sprintf("%s (%.2f)", e.Name, e.Ratio))
	}
	fmt.Fprintf(tw, "Most resilient:\t%s\n", strings.Join(names, ", "))

	if err := tw.Flush(); err != nil {
		return err
	}

	for _, f := range s.FireList {
		fmt.Fprintf(w, "  ! %s (%s, %s) risk %.0f%%\n", f.Name, f.Manager, f.Zone, f.Risk*100)
	}

	if report.Briefing != nil {
		fmt.Fprintf(w, "\nBriefing:\n%s\n", report.Briefing.Text)
	}
	return nil
}

// RenderRows prints the fleet monitoring table
func (r *Renderer) RenderRows(w io.Writer, rows []model.EmployeeRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMANAGER\tZONE\tSTATUS\tSCORE\tFLAGS")
	for _, row := range rows {
		score := fmt.Sprintf("%.1f", row.Score)
		if row.HighRisk {
			score += "!"
		}
		flags := make([]string, 0, len(row.ProfileFlags))
		for _, f := range row.ProfileFlags {
			flags = append(flags, string(f))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.ID, row.Name, row.Manager, row.Zone, row.Status, score, strings.Join(flags, ","))
	}
	return tw.Flush()
}

// RenderHeatmap prints the detailed signal matrix in percent.
// Negative cells at or above the fire threshold carry a trailing "!".
func (r *Renderer) RenderHeatmap(w io.Writer, rows []model.HeatmapRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"ID", "NAME", "ZONE"}
	for _, c := range analytics.HeatmapColumns() {
		header = append(header, strings.ToUpper(c.Signal))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range rows {
		fields := []string{row.ID, row.Name, row.Zone}
		for _, c := range row.Cells {
			cell := fmt.Sprintf("%.0f", c.Value)
			if c.Tone == model.ToneNegative && c.Value >= analytics.FireRiskThreshold*100 {
				cell += "!"
			}
			fields = append(fields, cell)
		}
		fmt.Fprintln(tw, strings.Join(fields, "\t"))
	}
	return tw.Flush()
}

// RenderFireList prints the intervention table
func (r *Renderer) RenderFireList(w io.Writer, entries []model.FireEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No unattended critical cases.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMANAGER\tZONE\tPHONE\tRISK\tSEVERITY\tTAGS")
	for _, f := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.0f%%\t%.1f\t%s\n",
			f.ID, f.Name, f.Manager, f.Zone, f.Phone, f.Risk*100, f.Severity, strings.Join(f.Tags, ","))
	}
	return tw.Flush()
}
