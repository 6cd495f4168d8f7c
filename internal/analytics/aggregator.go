package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/ppiankov/mindfleet/internal/model"
)

// HourBuckets are the canonical hour labels of the hourly anger rollup
var HourBuckets = []string{"09:00", "11:00", "14:00", "18:00"}

const (
	resilienceTop = 3
	cohesionScale = 50

	riskBandOptimal = 35.0
	riskBandCaution = 60.0

	incoherenceWarnRate = 20
)

// Aggregator derives the dashboard summary from a roster snapshot
type Aggregator struct{}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Compute derives a complete summary from the roster.
// It is a pure function of its input: no state survives between calls.
func (a *Aggregator) Compute(employees []model.Employee) model.Summary {
	summary := model.Summary{
		RosterSize:        len(employees),
		GlobalRisk:        globalRisk(employees),
		FireList:          fireList(employees),
		IncoherenceRate:   incoherenceRate(employees),
		ResilienceRanking: resilienceRanking(employees),
		CohesionIndex:     cohesionIndex(employees),
		ManagerAnxiety:    managerAnxiety(employees),
		HourlyAnger:       hourlyAnger(employees),
	}
	summary.Signals = a.signals(summary)
	return summary
}

// divisor guards every mean against empty groups
func divisor(n int) float64 {
	if n < 1 {
		return 1
	}
	return float64(n)
}

func globalRisk(employees []model.Employee) float64 {
	total := 0.0
	for _, e := range employees {
		total += Risk(e)
	}
	return total / divisor(len(employees)) * 100
}

func fireList(employees []model.Employee) []model.FireEntry {
	entries := make([]model.FireEntry, 0)
	for _, e := range employees {
		if !OnFire(e) {
			continue
		}
		entries = append(entries, model.FireEntry{
			ID:       e.ID,
			Name:     e.Name,
			Manager:  e.Manager,
			Zone:     e.Zone,
			Phone:    e.Phone,
			Risk:     Risk(e),
			Severity: AlertSeverity(e),
			Tags:     AlertTags(e),
		})
	}
	return entries
}

func incoherenceRate(employees []model.Employee) int {
	flagged := 0
	for _, e := range employees {
		if IsIncoherent(e) {
			flagged++
		}
	}
	return int(math.Round(float64(flagged) / divisor(len(employees)) * 100))
}

func resilienceRanking(employees []model.Employee) []model.ResilienceEntry {
	ranking := make([]model.ResilienceEntry, 0, len(employees))
	for _, e := range employees {
		ranking = append(ranking, model.ResilienceEntry{
			ID:    e.ID,
			Name:  e.Name,
			Ratio: ResilienceRatio(e),
		})
	}

	// Stable: ties keep roster order
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Ratio > ranking[j].Ratio
	})

	if len(ranking) > resilienceTop {
		ranking = ranking[:resilienceTop]
	}
	return ranking
}

func cohesionIndex(employees []model.Employee) float64 {
	total := 0.0
	for _, e := range employees {
		total += e.Amusement + e.Sympathy
	}
	return total / divisor(len(employees)) * cohesionScale
}

func managerAnxiety(employees []model.Employee) []model.ManagerAnxiety {
	type group struct {
		total float64
		count int
	}

	var order []string
	groups := make(map[string]*group)
	for _, e := range employees {
		g, ok := groups[e.Manager]
		if !ok {
			g = &group{}
			groups[e.Manager] = g
			order = append(order, e.Manager)
		}
		g.total += e.Anxiety
		g.count++
	}

	result := make([]model.ManagerAnxiety, 0, len(order))
	for _, name := range order {
		g := groups[name]
		result = append(result, model.ManagerAnxiety{
			Manager: name,
			Anxiety: g.total / divisor(g.count) * 100,
			Reports: g.count,
		})
	}
	return result
}

func hourlyAnger(employees []model.Employee) []model.HourlyAnger {
	result := make([]model.HourlyAnger, 0, len(HourBuckets))
	for _, hour := range HourBuckets {
		total := 0.0
		count := 0
		for _, e := range employees {
			if e.Hour == hour {
				total += e.Anger
				count++
			}
		}
		result = append(result, model.HourlyAnger{
			Hour:      hour,
			Anger:     total / divisor(count) * 100,
			Employees: count,
		})
	}
	return result
}

// RiskBand classifies a 0-100 global risk into the gauge bands
func RiskBand(globalRisk float64) string {
	switch {
	case globalRisk <= riskBandOptimal:
		return "optimal"
	case globalRisk <= riskBandCaution:
		return "caution"
	default:
		return "critical"
	}
}

// signals explains the headline numbers together with their formulas
func (a *Aggregator) signals(s model.Summary) []model.Signal {
	band := RiskBand(s.GlobalRisk)
	riskSeverity := model.SeverityInfo
	switch band {
	case "caution":
		riskSeverity = model.SeverityWarning
	case "critical":
		riskSeverity = model.SeverityCritical
	}

	fireSeverity := model.SeverityInfo
	if len(s.FireList) > 0 {
		fireSeverity = model.SeverityCritical
	}

	incoherenceSeverity := model.SeverityInfo
	if s.IncoherenceRate > incoherenceWarnRate {
		incoherenceSeverity = model.SeverityWarning
	}

	return []model.Signal{
		{
			Type:        model.SignalGlobalRisk,
			Severity:    riskSeverity,
			Description: fmt.Sprintf("Global fleet risk %.1f/100 (%s)", s.GlobalRisk, band),
			Data: map[string]interface{}{
				"value":   s.GlobalRisk,
				"band":    band,
				"formula": "mean((anger + anxiety + tiredness + pain) / 4) * 100",
			},
		},
		{
			Type:        model.SignalFireList,
			Severity:    fireSeverity,
			Description: fmt.Sprintf("%d unattended employees with risk > %.1f", len(s.FireList), FireRiskThreshold),
			Data: map[string]interface{}{
				"count":   len(s.FireList),
				"formula": "risk > 0.7 && status == pending",
			},
		},
		{
			Type:        model.SignalIncoherence,
			Severity:    incoherenceSeverity,
			Description: fmt.Sprintf("%d%% of messages read positive while negative affect is high", s.IncoherenceRate),
			Data: map[string]interface{}{
				"rate":    s.IncoherenceRate,
				"formula": "round(100 * flagged / roster_size), flagged = positive word && irony + sadness + doubt > 0.5",
			},
		},
		{
			Type:        model.SignalCohesion,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Cohesion index %.0f/100", math.Round(s.CohesionIndex)),
			Data: map[string]interface{}{
				"value":   s.CohesionIndex,
				"formula": "mean(amusement + sympathy) * 50",
			},
		},
	}
}
