package roster

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ppiankov/mindfleet/internal/analytics"
	"github.com/ppiankov/mindfleet/internal/model"
)

func testRoster(t *testing.T) Roster {
	t.Helper()
	r, err := New([]model.Employee{
		{ID: "emp_1", Name: "Adrián Mendoza", Manager: "Sonia Raga", Status: model.StatusPending},
		{ID: "emp_2", Name: "Kevin Blanco", Manager: "Marc Vila", Status: model.StatusPending},
		{ID: "emp_3", Name: "Elena Soler", Manager: "Marc Vila", Status: "en_proceso"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNew_NormalizesStatus(t *testing.T) {
	r := testRoster(t)

	e, ok := r.Find("emp_3")
	if !ok {
		t.Fatal("Expected emp_3 to exist")
	}
	if e.Status != model.StatusInProcess {
		t.Errorf("Expected in_process, got %s", e.Status)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name      string
		employees []model.Employee
		want      error
	}{
		{"empty id", []model.Employee{{ID: " "}}, ErrEmptyID},
		{"duplicate id", []model.Employee{{ID: "a"}, {ID: "a"}}, ErrDuplicateID},
		{"bad status", []model.Employee{{ID: "a", Status: "done"}}, ErrUnknownStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.employees)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRoster_WithStatus(t *testing.T) {
	r := testRoster(t)

	next, ok := r.WithStatus("emp_1", model.StatusAddressed)
	if !ok {
		t.Fatal("Expected emp_1 to be found")
	}

	updated, _ := next.Find("emp_1")
	if updated.Status != model.StatusAddressed {
		t.Errorf("Expected addressed, got %s", updated.Status)
	}

	prev, _ := r.Find("emp_1")
	if prev.Status != model.StatusPending {
		t.Errorf("Expected receiver roster untouched, got %s", prev.Status)
	}

	// Only the targeted record changes
	other, _ := next.Find("emp_2")
	if other.Status != model.StatusPending {
		t.Errorf("Expected emp_2 unchanged, got %s", other.Status)
	}
}

func TestRoster_WithStatus_InvalidStatus(t *testing.T) {
	r := testRoster(t)

	if _, ok := r.WithStatus("emp_1", "closed"); ok {
		t.Error("Expected invalid status to be rejected")
	}
}

// An unknown id leaves the roster and every derived metric unchanged
func TestRoster_WithStatus_UnknownID(t *testing.T) {
	r, err := NewMockSource(1).Load(t.Context())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	agg := analytics.NewAggregator()
	before, _ := json.Marshal(agg.Compute(r.Employees()))

	next, ok := r.WithStatus("emp_404", model.StatusAddressed)
	if ok {
		t.Error("Expected unknown id to report false")
	}

	after, _ := json.Marshal(agg.Compute(next.Employees()))
	if string(before) != string(after) {
		t.Error("Expected identical summary after unknown-id mutation")
	}

	rosterBefore, _ := json.Marshal(r.Employees())
	rosterAfter, _ := json.Marshal(next.Employees())
	if string(rosterBefore) != string(rosterAfter) {
		t.Error("Expected identical roster after unknown-id mutation")
	}
}

func TestRoster_EmployeesReturnsCopy(t *testing.T) {
	r := testRoster(t)

	employees := r.Employees()
	employees[0].Status = model.StatusAddressed

	e, _ := r.Find("emp_1")
	if e.Status != model.StatusPending {
		t.Error("Expected caller mutation not to leak into the roster")
	}
}

func TestRoster_Filter(t *testing.T) {
	r := testRoster(t)

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"emp_1", "emp_2", "emp_3"}},
		{"marc", []string{"emp_2", "emp_3"}},
		{"KEVIN", []string{"emp_2"}},
		{"adrián", []string{"emp_1"}},
		{"nobody", nil},
	}
	for _, tt := range tests {
		got := r.Filter(tt.term)
		if len(got) != len(tt.want) {
			t.Errorf("Filter(%q): expected %d results, got %d", tt.term, len(tt.want), len(got))
			continue
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("Filter(%q)[%d]: expected %s, got %s", tt.term, i, id, got[i].ID)
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want model.Status
	}{
		{"pending", model.StatusPending},
		{"", model.StatusPending},
		{"Pendiente", model.StatusPending},
		{"in-process", model.StatusInProcess},
		{"en_proceso", model.StatusInProcess},
		{" ATENDIDO ", model.StatusAddressed},
		{"addressed", model.StatusAddressed},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseStatus("closed"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("Expected ErrUnknownStatus, got %v", err)
	}
}
