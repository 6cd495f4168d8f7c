package model

import (
	"fmt"
	"math"
)

// Summary is the derived analytics view over a roster snapshot.
// It is recomputed wholesale on every roster change.
type Summary struct {
	RosterSize        int               `json:"roster_size"`
	GlobalRisk        float64           `json:"global_risk"`      // 0-100
	FireList          []FireEntry       `json:"fire_list"`        // Roster order
	IncoherenceRate   int               `json:"incoherence_rate"` // Percentage
	ResilienceRanking []ResilienceEntry `json:"resilience_ranking"`
	CohesionIndex     float64           `json:"cohesion_index"`  // Not clamped
	ManagerAnxiety    []ManagerAnxiety  `json:"manager_anxiety"` // First-occurrence order
	HourlyAnger       []HourlyAnger     `json:"hourly_anger"`    // Canonical bucket order
	Signals           []Signal          `json:"signals"`
}

// FireEntry is an employee flagged for urgent intervention
type FireEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Manager  string   `json:"manager"`
	Zone     string   `json:"zone"`
	Phone    string   `json:"phone,omitempty"`
	Risk     float64  `json:"risk"`     // 0-1 composite used for membership
	Severity float64  `json:"severity"` // 0-10 weighted alert score
	Tags     []string `json:"tags,omitempty"`
}

// ResilienceEntry is one row of the resilience hall of fame
type ResilienceEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Ratio float64 `json:"ratio"`
}

// ManagerAnxiety is the mean anxiety percentage across one manager's reports
type ManagerAnxiety struct {
	Manager string  `json:"manager"`
	Anxiety float64 `json:"anxiety"`
	Reports int     `json:"reports"`
}

// HourlyAnger is the mean anger percentage for one hour bucket
type HourlyAnger struct {
	Hour      string  `json:"hour"`
	Anger     float64 `json:"anger"`
	Employees int     `json:"employees"`
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalGlobalRisk  SignalType = "global_risk" // Fleet risk gauge band
	SignalFireList    SignalType = "fire_list"   // Unattended critical employees
	SignalIncoherence SignalType = "incoherence" // Positive words, negative affect
	SignalCohesion    SignalType = "cohesion"    // Positive social affect
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// DataSummary renders the short text handed to the briefing collaborator
func (s Summary) DataSummary() string {
	return fmt.Sprintf("Risk: %.1f%%. Alerts: %d. Incoherence: %d%%. Cohesion: %.0f.",
		s.GlobalRisk, len(s.FireList), s.IncoherenceRate, math.Round(s.CohesionIndex))
}

// SignalByType returns the first signal of the given type
func (s Summary) SignalByType(t SignalType) (Signal, bool) {
	for _, sig := range s.Signals {
		if sig.Type == t {
			return sig, true
		}
	}
	return Signal{}, false
}
