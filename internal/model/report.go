package model

import "time"

// Report is the rendered dashboard snapshot written to JSON/Markdown
type Report struct {
	Fleet       string        `json:"fleet"`        // Roster source label
	GeneratedAt time.Time     `json:"generated_at"` // When the snapshot was taken
	Summary     Summary       `json:"summary"`
	Rows        []EmployeeRow `json:"rows"`
	Heatmap     []HeatmapRow  `json:"heatmap,omitempty"`
	Briefing    *Briefing     `json:"briefing,omitempty"` // Optional, never affects metrics
}

// EmployeeRow is one line of the fleet monitoring table
type EmployeeRow struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Manager      string         `json:"manager"`
	Zone         string         `json:"zone"`
	Status       Status         `json:"status"`
	Score        float64        `json:"score"` // Risk on a 0-10 scale
	HighRisk     bool           `json:"high_risk"`
	Trend        []HistoryPoint `json:"trend,omitempty"`
	ProfileFlags []ProfileFlag  `json:"profile_flags,omitempty"`
}

// HeatmapRow is one employee's line of the detailed signal matrix
type HeatmapRow struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Zone  string        `json:"zone"`
	Cells []HeatmapCell `json:"cells"`
}

// HeatmapCell is one signal as a percentage, with the tone used to shade it
type HeatmapCell struct {
	Signal string  `json:"signal"`
	Tone   Tone    `json:"tone"`
	Value  float64 `json:"value"`
}

// Tone groups heatmap signals by how they read
type Tone string

const (
	ToneNegative Tone = "negative"
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
)

// Profile is the per-employee breakdown shown in the detail view
type Profile struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Manager       string        `json:"manager"`
	Zone          string        `json:"zone"`
	Status        Status        `json:"status"`
	Risk          float64       `json:"risk"`
	Score         float64       `json:"score"`
	HighRisk      bool          `json:"high_risk"`
	Incoherent    bool          `json:"incoherent"`
	CoherenceHint string        `json:"coherence_hint"`
	Resilience    float64       `json:"resilience"`
	Flags         []ProfileFlag `json:"flags,omitempty"`
	RiskAxes      []RadarAxis   `json:"risk_axes"`
	TalentAxes    []RadarAxis   `json:"talent_axes"`
	LastMessage   string        `json:"last_message"`
}

// ProfileFlag marks a notable psychological shape
type ProfileFlag string

const (
	FlagBurnedOutLeader      ProfileFlag = "burned_out_leader"
	FlagCynicalHighPerformer ProfileFlag = "cynical_high_performer"
)

// RadarAxis is one axis of the profile radar, as a percentage
type RadarAxis struct {
	Axis  string  `json:"axis"`
	Value float64 `json:"value"`
}

// Briefing is the executive prose produced by the briefing collaborator.
// It is kept apart from Summary and never influences the metrics.
type Briefing struct {
	Enabled    bool     `json:"enabled"`
	Provider   string   `json:"provider,omitempty"`
	Model      string   `json:"model,omitempty"`
	Text       string   `json:"text"`
	Fallback   bool     `json:"fallback"`             // Text is a static placeholder
	Cached     bool     `json:"cached,omitempty"`     // Served from the briefing cache
	Request    string   `json:"request,omitempty"`    // Data summary the text answers
	TokensUsed int      `json:"tokens_used,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}
