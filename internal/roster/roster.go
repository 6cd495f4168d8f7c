package roster

import (
	"fmt"
	"strings"

	"github.com/ppiankov/mindfleet/internal/model"
)

// Roster is an ordered, immutable snapshot of tracked employees.
// Mutations return a new Roster and leave the receiver untouched.
type Roster struct {
	employees []model.Employee
	index     map[string]int
}

// New validates the employees and builds a roster in the given order.
// Empty statuses default to pending.
func New(employees []model.Employee) (Roster, error) {
	r := Roster{
		employees: make([]model.Employee, 0, len(employees)),
		index:     make(map[string]int, len(employees)),
	}

	for i, e := range employees {
		if strings.TrimSpace(e.ID) == "" {
			return Roster{}, fmt.Errorf("employee #%d: %w", i+1, ErrEmptyID)
		}
		if _, dup := r.index[e.ID]; dup {
			return Roster{}, fmt.Errorf("employee %q: %w", e.ID, ErrDuplicateID)
		}

		status, err := ParseStatus(string(e.Status))
		if err != nil {
			return Roster{}, fmt.Errorf("employee %q: %w", e.ID, err)
		}
		e.Status = status
		e.History = append([]model.HistoryPoint(nil), e.History...)

		r.index[e.ID] = len(r.employees)
		r.employees = append(r.employees, e)
	}

	return r, nil
}

// Employees returns a copy of the roster in iteration order
func (r Roster) Employees() []model.Employee {
	out := make([]model.Employee, len(r.employees))
	copy(out, r.employees)
	return out
}

// Len returns the number of employees
func (r Roster) Len() int {
	return len(r.employees)
}

// Find looks an employee up by id
func (r Roster) Find(id string) (model.Employee, bool) {
	i, ok := r.index[id]
	if !ok {
		return model.Employee{}, false
	}
	return r.employees[i], true
}

// WithStatus replaces the status of exactly one employee.
// An unknown id or an invalid status returns the receiver unchanged and false.
func (r Roster) WithStatus(id string, status model.Status) (Roster, bool) {
	i, ok := r.index[id]
	if !ok || !status.Valid() {
		return r, false
	}
	if r.employees[i].Status == status {
		return r, true
	}

	next := Roster{
		employees: r.Employees(),
		index:     r.index, // Ids and order never change, so the index is shared
	}
	next.employees[i].Status = status
	return next, true
}

// Filter returns the employees whose name or manager contains term,
// case-insensitively. An empty term matches everyone.
func (r Roster) Filter(term string) []model.Employee {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return r.Employees()
	}

	var out []model.Employee
	for _, e := range r.employees {
		if strings.Contains(strings.ToLower(e.Name), needle) ||
			strings.Contains(strings.ToLower(e.Manager), needle) {
			out = append(out, e)
		}
	}
	return out
}
