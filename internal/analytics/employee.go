package analytics

import (
	"math"
	"slices"
	"strings"

	"github.com/ppiankov/mindfleet/internal/model"
)

const (
	// FireRiskThreshold is the risk above which a pending employee is on the fire list
	FireRiskThreshold = 0.7

	// IncoherenceThreshold is the irony+sadness+doubt sum that contradicts positive text
	IncoherenceThreshold = 0.5

	// ResilienceSmoothing is added to both sides of the resilience ratio
	ResilienceSmoothing = 0.1
)

// positiveWords are matched as plain substrings of the lowercased message
var positiveWords = []string{"bien", "genial", "ok", "si", "perfecto"}

// Risk is the unweighted mean of the four negative-affect signals, in [0,1]
func Risk(e model.Employee) float64 {
	return (e.Anger + e.Anxiety + e.Tiredness + e.Pain) / 4
}

// DisplayScore is the risk on the 0-10 table scale, rounded to one decimal
func DisplayScore(e model.Employee) float64 {
	return math.Round(Risk(e)*100) / 10
}

// IsHighRisk reports whether the risk crosses the fire threshold, regardless of status
func IsHighRisk(e model.Employee) bool {
	return Risk(e) > FireRiskThreshold
}

// OnFire reports fire list membership: high risk and nobody on it yet
func OnFire(e model.Employee) bool {
	return IsHighRisk(e) && e.Status == model.StatusPending
}

// AlertSeverity weights anger and pain double, on a 0-10 scale
func AlertSeverity(e model.Employee) float64 {
	return (e.Anger*2 + e.Pain*2 + e.Anxiety + e.Tiredness) / 6 * 10
}

// AlertTags lists the acute signals behind an alert
func AlertTags(e model.Employee) []string {
	var tags []string
	if e.Anger > 0.5 {
		tags = append(tags, "anger")
	}
	if e.Pain > 0.4 {
		tags = append(tags, "pain")
	}
	if e.Distress > 0.4 {
		tags = append(tags, "distress")
	}
	if e.Disgust > 0.5 {
		tags = append(tags, "disgust")
	}
	return tags
}

// HasPositiveText reports whether the last message contains a positive token.
// Matching is substring containment, so "ok" also matches inside "token".
func HasPositiveText(message string) bool {
	lower := strings.ToLower(message)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// IsIncoherent flags positive wording contradicted by measured negative affect
func IsIncoherent(e model.Employee) bool {
	return HasPositiveText(e.LastMessage) && e.Irony+e.Sadness+e.Doubt > IncoherenceThreshold
}

// ResilienceRatio compares drive to strain; the smoothing keeps it finite
func ResilienceRatio(e model.Employee) float64 {
	return (e.Determination + e.Relief + ResilienceSmoothing) / (e.Frustration + e.Anxiety + ResilienceSmoothing)
}

// ProfileFlags detects the notable shapes highlighted in the detail view
func ProfileFlags(e model.Employee) []model.ProfileFlag {
	var flags []model.ProfileFlag
	if e.Determination > 0.7 && e.Tiredness > 0.7 {
		flags = append(flags, model.FlagBurnedOutLeader)
	}
	if e.Determination > 0.8 && e.Irony > 0.6 {
		flags = append(flags, model.FlagCynicalHighPerformer)
	}
	return flags
}

// CoherenceHint is the quick speech label shown next to the last message
func CoherenceHint(e model.Employee) string {
	if e.Irony > 0.5 {
		return "possible_incoherence"
	}
	return "high_coherence"
}

// ProfileOf builds the full detail breakdown for one employee
func ProfileOf(e model.Employee) model.Profile {
	return model.Profile{
		ID:            e.ID,
		Name:          e.Name,
		Manager:       e.Manager,
		Zone:          e.Zone,
		Status:        e.Status,
		Risk:          Risk(e),
		Score:         DisplayScore(e),
		HighRisk:      IsHighRisk(e),
		Incoherent:    IsIncoherent(e),
		CoherenceHint: CoherenceHint(e),
		Resilience:    ResilienceRatio(e),
		Flags:         ProfileFlags(e),
		RiskAxes: []model.RadarAxis{
			{Axis: "anger", Value: e.Anger * 100},
			{Axis: "anxiety", Value: e.Anxiety * 100},
			{Axis: "tiredness", Value: e.Tiredness * 100},
			{Axis: "irony", Value: e.Irony * 100},
		},
		TalentAxes: []model.RadarAxis{
			{Axis: "determination", Value: e.Determination * 100},
			{Axis: "satisfaction", Value: e.Satisfaction * 100},
			{Axis: "excitement", Value: e.Excitement * 100},
		},
		LastMessage: e.LastMessage,
	}
}

// Rows builds the fleet monitoring table in roster order
func Rows(employees []model.Employee) []model.EmployeeRow {
	rows := make([]model.EmployeeRow, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, model.EmployeeRow{
			ID:           e.ID,
			Name:         e.Name,
			Manager:      e.Manager,
			Zone:         e.Zone,
			Status:       e.Status,
			Score:        DisplayScore(e),
			HighRisk:     IsHighRisk(e),
			Trend:        e.History,
			ProfileFlags: ProfileFlags(e),
		})
	}
	return rows
}

// HeatmapColumn is one column of the detailed signal matrix
type HeatmapColumn struct {
	Signal string
	Tone   model.Tone
}

// heatmapColumns is the fixed column order of the detailed view
var heatmapColumns = []HeatmapColumn{
	{"anger", model.ToneNegative},
	{"anxiety", model.ToneNegative},
	{"tiredness", model.ToneNegative},
	{"sadness", model.ToneNegative},
	{"frustration", model.ToneNegative},
	{"determination", model.TonePositive},
	{"satisfaction", model.TonePositive},
	{"doubt", model.ToneNeutral},
	{"confusion", model.ToneNeutral},
	{"sympathy", model.TonePositive},
}

// HeatmapColumns returns the detailed view columns in display order
func HeatmapColumns() []HeatmapColumn {
	return slices.Clone(heatmapColumns)
}

// Heatmap builds the detailed signal matrix in roster order, values in percent
func Heatmap(employees []model.Employee) []model.HeatmapRow {
	rows := make([]model.HeatmapRow, 0, len(employees))
	for _, e := range employees {
		values := make(map[string]float64, 20)
		for _, sig := range e.Signals.Named() {
			values[sig.Name] = sig.Value
		}

		cells := make([]model.HeatmapCell, 0, len(heatmapColumns))
		for _, col := range heatmapColumns {
			cells = append(cells, model.HeatmapCell{
				Signal: col.Signal,
				Tone:   col.Tone,
				Value:  values[col.Signal] * 100,
			})
		}
		rows = append(rows, model.HeatmapRow{ID: e.ID, Name: e.Name, Zone: e.Zone, Cells: cells})
	}
	return rows
}
