package analytics

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ppiankov/mindfleet/internal/model"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newEmployee(id, manager string) model.Employee {
	return model.Employee{
		ID:      id,
		Name:    "Employee " + id,
		Manager: manager,
		Zone:    "Madrid-Sur",
		Status:  model.StatusPending,
		Hour:    "09:00",
	}
}

func TestAggregator_Compute_MaxRisk(t *testing.T) {
	e := newEmployee("emp_1", "Sonia Raga")
	e.Anger, e.Anxiety, e.Tiredness, e.Pain = 1.0, 1.0, 1.0, 1.0

	summary := NewAggregator().Compute([]model.Employee{e})

	if summary.GlobalRisk != 100 {
		t.Errorf("Expected global risk 100, got %v", summary.GlobalRisk)
	}
	if len(summary.FireList) != 1 || summary.FireList[0].ID != "emp_1" {
		t.Fatalf("Expected emp_1 on fire list, got %+v", summary.FireList)
	}
	if summary.FireList[0].Severity != 10 {
		t.Errorf("Expected alert severity 10, got %v", summary.FireList[0].Severity)
	}

	sig, ok := summary.SignalByType(model.SignalGlobalRisk)
	if !ok {
		t.Fatal("Expected global risk signal")
	}
	if sig.Severity != model.SeverityCritical {
		t.Errorf("Expected critical severity, got %s", sig.Severity)
	}
}

func TestAggregator_Compute_Incoherence(t *testing.T) {
	e := newEmployee("emp_1", "Sonia Raga")
	e.LastMessage = "todo bien"
	e.Irony, e.Sadness, e.Doubt = 0.3, 0.3, 0.3

	summary := NewAggregator().Compute([]model.Employee{e})

	if summary.IncoherenceRate != 100 {
		t.Errorf("Expected incoherence rate 100, got %d", summary.IncoherenceRate)
	}

	sig, _ := summary.SignalByType(model.SignalIncoherence)
	if sig.Severity != model.SeverityWarning {
		t.Errorf("Expected warning severity above 20%%, got %s", sig.Severity)
	}
}

func TestAggregator_Compute_NeutralRatio(t *testing.T) {
	e := newEmployee("emp_1", "Sonia Raga")

	summary := NewAggregator().Compute([]model.Employee{e})

	if len(summary.ResilienceRanking) != 1 {
		t.Fatalf("Expected 1 ranking entry, got %d", len(summary.ResilienceRanking))
	}
	if summary.ResilienceRanking[0].Ratio != 1.0 {
		t.Errorf("Expected ratio exactly 1.0, got %v", summary.ResilienceRanking[0].Ratio)
	}
}

func TestAggregator_Compute_SharedManager(t *testing.T) {
	a := newEmployee("emp_1", "Marc Vila")
	a.Anxiety = 0.8
	b := newEmployee("emp_2", "Marc Vila")
	b.Anxiety = 0.3

	summary := NewAggregator().Compute([]model.Employee{a, b})

	if len(summary.ManagerAnxiety) != 1 {
		t.Fatalf("Expected 1 manager entry, got %d", len(summary.ManagerAnxiety))
	}
	got := summary.ManagerAnxiety[0]
	if got.Manager != "Marc Vila" {
		t.Errorf("Expected manager 'Marc Vila', got '%s'", got.Manager)
	}
	if !approxEqual(got.Anxiety, 55) {
		t.Errorf("Expected anxiety 55, got %v", got.Anxiety)
	}
	if got.Reports != 2 {
		t.Errorf("Expected 2 reports, got %d", got.Reports)
	}
}

func TestAggregator_Compute_EmptyRoster(t *testing.T) {
	summary := NewAggregator().Compute(nil)

	if summary.GlobalRisk != 0 {
		t.Errorf("Expected global risk 0, got %v", summary.GlobalRisk)
	}
	if summary.IncoherenceRate != 0 {
		t.Errorf("Expected incoherence 0, got %d", summary.IncoherenceRate)
	}
	if summary.CohesionIndex != 0 {
		t.Errorf("Expected cohesion 0, got %v", summary.CohesionIndex)
	}
	if len(summary.FireList) != 0 || summary.FireList == nil {
		t.Errorf("Expected empty non-nil fire list, got %v", summary.FireList)
	}
	if len(summary.ResilienceRanking) != 0 {
		t.Errorf("Expected empty ranking, got %d entries", len(summary.ResilienceRanking))
	}
	if len(summary.ManagerAnxiety) != 0 {
		t.Errorf("Expected no manager entries, got %d", len(summary.ManagerAnxiety))
	}
	if len(summary.HourlyAnger) != len(HourBuckets) {
		t.Fatalf("Expected %d hourly buckets, got %d", len(HourBuckets), len(summary.HourlyAnger))
	}
	for _, h := range summary.HourlyAnger {
		if h.Anger != 0 {
			t.Errorf("Expected bucket %s to report 0, got %v", h.Hour, h.Anger)
		}
	}
}

func TestAggregator_FireList_OnlyPending(t *testing.T) {
	statuses := []model.Status{model.StatusPending, model.StatusInProcess, model.StatusAddressed}
	var roster []model.Employee
	for i, status := range statuses {
		e := newEmployee(string(rune('a'+i)), "Sonia Raga")
		e.Anger, e.Anxiety, e.Tiredness, e.Pain = 0.9, 0.9, 0.9, 0.9
		e.Status = status
		roster = append(roster, e)
	}

	summary := NewAggregator().Compute(roster)

	if len(summary.FireList) != 1 {
		t.Fatalf("Expected only the pending employee, got %d entries", len(summary.FireList))
	}
	if summary.FireList[0].ID != "a" {
		t.Errorf("Expected pending employee 'a', got '%s'", summary.FireList[0].ID)
	}
}

func TestAggregator_FireList_ThresholdIsStrict(t *testing.T) {
	e := newEmployee("emp_1", "Sonia Raga")
	e.Anger, e.Anxiety, e.Tiredness, e.Pain = 0.7, 0.7, 0.7, 0.7

	summary := NewAggregator().Compute([]model.Employee{e})

	if len(summary.FireList) != 0 {
		t.Errorf("Expected risk of exactly 0.7 to stay off the fire list, got %+v", summary.FireList)
	}
}

func TestAggregator_FireList_RosterOrder(t *testing.T) {
	mild := newEmployee("mild", "A")
	mild.Anger, mild.Anxiety, mild.Tiredness, mild.Pain = 0.75, 0.75, 0.75, 0.75
	severe := newEmployee("severe", "A")
	severe.Anger, severe.Anxiety, severe.Tiredness, severe.Pain = 1, 1, 1, 1

	summary := NewAggregator().Compute([]model.Employee{mild, severe})

	if len(summary.FireList) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(summary.FireList))
	}
	if summary.FireList[0].ID != "mild" || summary.FireList[1].ID != "severe" {
		t.Errorf("Expected roster order, got %s, %s", summary.FireList[0].ID, summary.FireList[1].ID)
	}
}

func TestAggregator_Resilience_TopThreeStable(t *testing.T) {
	var roster []model.Employee
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		roster = append(roster, newEmployee(id, "A"))
	}
	// "d" is the only one above the neutral 1.0 ratio
	roster[3].Determination = 0.9

	summary := NewAggregator().Compute(roster)

	if len(summary.ResilienceRanking) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(summary.ResilienceRanking))
	}
	want := []string{"d", "a", "b"}
	for i, id := range want {
		if summary.ResilienceRanking[i].ID != id {
			t.Errorf("Expected %s at position %d, got %s", id, i, summary.ResilienceRanking[i].ID)
		}
	}
	for i := 1; i < len(summary.ResilienceRanking); i++ {
		if summary.ResilienceRanking[i].Ratio > summary.ResilienceRanking[i-1].Ratio {
			t.Errorf("Expected descending ratios, got %+v", summary.ResilienceRanking)
		}
	}
}

func TestAggregator_Resilience_ShortRoster(t *testing.T) {
	roster := []model.Employee{newEmployee("a", "A"), newEmployee("b", "B")}

	summary := NewAggregator().Compute(roster)

	if len(summary.ResilienceRanking) != 2 {
		t.Errorf("Expected ranking length 2, got %d", len(summary.ResilienceRanking))
	}
}

func TestAggregator_ManagerAnxiety_ExactNames(t *testing.T) {
	a := newEmployee("a", "Marc Vila")
	a.Anxiety = 0.4
	b := newEmployee("b", "Sonia Raga")
	b.Anxiety = 0.2
	c := newEmployee("c", "marc vila")
	c.Anxiety = 1.0

	summary := NewAggregator().Compute([]model.Employee{a, b, c})

	if len(summary.ManagerAnxiety) != 3 {
		t.Fatalf("Expected 3 groups (case-sensitive), got %d", len(summary.ManagerAnxiety))
	}
	order := []string{"Marc Vila", "Sonia Raga", "marc vila"}
	for i, name := range order {
		if summary.ManagerAnxiety[i].Manager != name {
			t.Errorf("Expected %s at position %d, got %s", name, i, summary.ManagerAnxiety[i].Manager)
		}
	}
}

func TestAggregator_HourlyAnger_Buckets(t *testing.T) {
	a := newEmployee("a", "A")
	a.Hour, a.Anger = "09:00", 0.8
	b := newEmployee("b", "A")
	b.Hour, b.Anger = "09:00", 0.4
	c := newEmployee("c", "A")
	c.Hour, c.Anger = "18:00", 0.5
	d := newEmployee("d", "A")
	d.Hour, d.Anger = "07:00", 1.0 // Not a canonical bucket

	summary := NewAggregator().Compute([]model.Employee{a, b, c, d})

	want := map[string]float64{"09:00": 60, "11:00": 0, "14:00": 0, "18:00": 50}
	for i, h := range summary.HourlyAnger {
		if h.Hour != HourBuckets[i] {
			t.Errorf("Expected bucket %s at %d, got %s", HourBuckets[i], i, h.Hour)
		}
		if !approxEqual(h.Anger, want[h.Hour]) {
			t.Errorf("Expected %s anger %v, got %v", h.Hour, want[h.Hour], h.Anger)
		}
	}
}

func TestAggregator_Cohesion(t *testing.T) {
	a := newEmployee("a", "A")
	a.Amusement, a.Sympathy = 1, 1
	b := newEmployee("b", "A")

	summary := NewAggregator().Compute([]model.Employee{a, b})

	if !approxEqual(summary.CohesionIndex, 50) {
		t.Errorf("Expected cohesion 50, got %v", summary.CohesionIndex)
	}
}

func TestAggregator_Compute_Idempotent(t *testing.T) {
	roster := randomRoster(rand.New(rand.NewPCG(7, 7)), 12)
	agg := NewAggregator()

	first, err := json.Marshal(agg.Compute(roster))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(agg.Compute(roster))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if string(first) != string(second) {
		t.Error("Expected identical output for an unchanged roster")
	}
}

func TestAggregator_Compute_Bounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 99))
	agg := NewAggregator()

	for i := 0; i < 200; i++ {
		roster := randomRoster(rng, 1+rng.IntN(20))
		summary := agg.Compute(roster)

		if summary.GlobalRisk < 0 || summary.GlobalRisk > 100 {
			t.Fatalf("Global risk out of bounds: %v", summary.GlobalRisk)
		}
		if summary.IncoherenceRate < 0 || summary.IncoherenceRate > 100 {
			t.Fatalf("Incoherence rate out of bounds: %d", summary.IncoherenceRate)
		}
		if summary.CohesionIndex < 0 || summary.CohesionIndex > 100 {
			t.Fatalf("Cohesion out of bounds: %v", summary.CohesionIndex)
		}
		wantRanking := len(roster)
		if wantRanking > 3 {
			wantRanking = 3
		}
		if len(summary.ResilienceRanking) != wantRanking {
			t.Fatalf("Expected ranking length %d, got %d", wantRanking, len(summary.ResilienceRanking))
		}
		for _, f := range summary.FireList {
			e := findEmployee(roster, f.ID)
			if e.Status != model.StatusPending {
				t.Fatalf("Non-pending employee %s on fire list", f.ID)
			}
		}
	}
}

func TestAggregator_Compute_DoesNotClamp(t *testing.T) {
	e := newEmployee("a", "A")
	e.Amusement, e.Sympathy = 2, 2

	summary := NewAggregator().Compute([]model.Employee{e})

	if !approxEqual(summary.CohesionIndex, 200) {
		t.Errorf("Expected out-of-range input to propagate (200), got %v", summary.CohesionIndex)
	}
}

func TestRiskBand(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "optimal"},
		{35, "optimal"},
		{35.1, "caution"},
		{60, "caution"},
		{60.5, "critical"},
		{100, "critical"},
	}
	for _, tt := range tests {
		if got := RiskBand(tt.value); got != tt.want {
			t.Errorf("RiskBand(%v) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func randomRoster(rng *rand.Rand, n int) []model.Employee {
	statuses := []model.Status{model.StatusPending, model.StatusInProcess, model.StatusAddressed}
	managers := []string{"Sonia Raga", "Marc Vila", "Ana Gil"}
	messages := []string{"todo bien", "ok", "Atascos en el puerto", "perfecto", ""}

	roster := make([]model.Employee, 0, n)
	for i := 0; i < n; i++ {
		e := newEmployee(string(rune('A'+i)), managers[rng.IntN(len(managers))])
		e.Status = statuses[rng.IntN(len(statuses))]
		e.Hour = HourBuckets[rng.IntN(len(HourBuckets))]
		e.LastMessage = messages[rng.IntN(len(messages))]
		e.Signals = model.Signals{
			Anger: rng.Float64(), Pain: rng.Float64(), Anxiety: rng.Float64(), Tiredness: rng.Float64(),
			Irony: rng.Float64(), Doubt: rng.Float64(), Sadness: rng.Float64(), Frustration: rng.Float64(),
			Determination: rng.Float64(), Relief: rng.Float64(), Amusement: rng.Float64(), Sympathy: rng.Float64(),
		}
		roster = append(roster, e)
	}
	return roster
}

func findEmployee(roster []model.Employee, id string) model.Employee {
	for _, e := range roster {
		if e.ID == id {
			return e
		}
	}
	return model.Employee{}
}
