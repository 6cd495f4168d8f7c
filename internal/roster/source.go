package roster

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/mindfleet/internal/model"
)

// Source produces the initial roster snapshot
type Source interface {
	// Name identifies the source in reports and logs
	Name() string

	// Load returns the full ordered roster
	Load(ctx context.Context) (Roster, error)
}

// NewSource picks a source from the configured value: "mock" or a file path
func NewSource(source string, seed uint64, logger logrus.FieldLogger) Source {
	if source == "" || source == "mock" {
		return NewMockSource(seed)
	}
	return &FileSource{Path: source, Logger: logger}
}

// FileSource reads a roster from a YAML or JSON file.
// The document is either a list of employees or a map with an "employees" key.
type FileSource struct {
	Path   string
	Logger logrus.FieldLogger
}

// rosterFile is the keyed document shape
type rosterFile struct {
	Employees []model.Employee `yaml:"employees"`
}

// Name returns the file path
func (s *FileSource) Name() string {
	return s.Path
}

// Load reads and validates the file. Out-of-range signals are logged, not rejected.
func (s *FileSource) Load(ctx context.Context) (Roster, error) {
	if err := ctx.Err(); err != nil {
		return Roster{}, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Roster{}, fmt.Errorf("failed to read roster: %w", err)
	}

	employees, err := decodeEmployees(data)
	if err != nil {
		return Roster{}, fmt.Errorf("failed to parse roster %s: %w", s.Path, err)
	}

	r, err := New(employees)
	if err != nil {
		return Roster{}, fmt.Errorf("invalid roster %s: %w", s.Path, err)
	}

	if s.Logger != nil {
		for _, issue := range CheckRanges(r.employees) {
			s.Logger.WithFields(logrus.Fields{
				"employee_id": issue.EmployeeID,
				"signal":      issue.Signal,
				"value":       issue.Value,
			}).Warn("signal outside [0,1], used as-is")
		}
	}

	return r, nil
}

// decodeEmployees accepts both document shapes. yaml.v3 also parses JSON.
func decodeEmployees(data []byte) ([]model.Employee, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var employees []model.Employee
		if err := root.Decode(&employees); err != nil {
			return nil, err
		}
		return employees, nil
	case yaml.MappingNode:
		var doc rosterFile
		if err := root.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Employees, nil
	default:
		return nil, fmt.Errorf("expected a list or a map with employees, got %s", root.Tag)
	}
}

// RangeIssue reports a signal value outside [0,1]
type RangeIssue struct {
	EmployeeID string
	Signal     string
	Value      float64
}

func (i RangeIssue) String() string {
	return fmt.Sprintf("%s.%s = %g", i.EmployeeID, i.Signal, i.Value)
}

// CheckRanges lists every signal outside [0,1]. Values are never modified.
func CheckRanges(employees []model.Employee) []RangeIssue {
	var issues []RangeIssue
	for _, e := range employees {
		for _, s := range e.Signals.Named() {
			if s.Value < 0 || s.Value > 1 {
				issues = append(issues, RangeIssue{EmployeeID: e.ID, Signal: s.Name, Value: s.Value})
			}
		}
	}
	return issues
}

// MockSource generates the built-in logistics fleet snapshot
type MockSource struct {
	seed uint64
}

// NewMockSource creates a mock source; the seed drives history jitter only
func NewMockSource(seed uint64) *MockSource {
	return &MockSource{seed: seed}
}

// Name returns "mock"
func (s *MockSource) Name() string {
	return "mock"
}

const (
	historyPoints = 7
	historyJitter = 0.2
)

// Load builds the six-employee fleet with seeded stress histories
func (s *MockSource) Load(ctx context.Context) (Roster, error) {
	if err := ctx.Err(); err != nil {
		return Roster{}, err
	}

	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	employees := mockEmployees()
	for i := range employees {
		employees[i].History = history(rng, mockHistoryBase[employees[i].ID])
	}
	return New(employees)
}

func history(rng *rand.Rand, base float64) []model.HistoryPoint {
	points := make([]model.HistoryPoint, 0, historyPoints)
	for i := 0; i < historyPoints; i++ {
		stress := base + rng.Float64()*2*historyJitter - historyJitter
		points = append(points, model.HistoryPoint{
			Label:  fmt.Sprintf("Day %d", i+1),
			Stress: min(1, max(0, stress)),
		})
	}
	return points
}

var mockHistoryBase = map[string]float64{
	"emp_1": 0.6,
	"emp_2": 0.1,
	"emp_3": 0.5,
	"emp_4": 0.4,
	"emp_5": 0.2,
	"emp_6": 0.7,
}

func mockEmployees() []model.Employee {
	return []model.Employee{
		{
			ID: "emp_1", Name: "Adrián Mendoza", Email: "a.mendoza@logistics.com", Phone: "+34 611 222 333",
			Manager: "Sonia Raga", Zone: "Madrid-Sur", Status: model.StatusPending,
			Signals: model.Signals{
				Anger: 0.82, Pain: 0.15, Anxiety: 0.45, Tiredness: 0.88, Distress: 0.3, Disgust: 0.1,
				Irony: 0.1, Doubt: 0.2, Sadness: 0.1, Frustration: 0.8, Confusion: 0.1, Boredom: 0.2,
				Contempt: 0.1, Satisfaction: 0.2, Determination: 0.4, Relief: 0.1, Security: 0.3,
				Amusement: 0.1, Sympathy: 0.2, Excitement: 0.1,
			},
			LastMessage: "Todo bien por aquí.", CreatedAt: "2025-05-10T08:30:00Z", Hour: "09:00",
		},
		{
			ID: "emp_2", Name: "Lucía Ortiz", Email: "l.ortiz@logistics.com", Phone: "+34 611 444 555",
			Manager: "Sonia Raga", Zone: "Madrid-Sur", Status: model.StatusAddressed,
			Signals: model.Signals{
				Anger: 0.1, Pain: 0.05, Anxiety: 0.1, Tiredness: 0.2, Distress: 0.1, Disgust: 0.05,
				Irony: 0.05, Doubt: 0.1, Sadness: 0.1, Frustration: 0.1, Confusion: 0.05, Boredom: 0.1,
				Contempt: 0.05, Satisfaction: 0.85, Determination: 0.95, Relief: 0.9, Security: 0.95,
				Amusement: 0.6, Sympathy: 0.7, Excitement: 0.8,
			},
			LastMessage: "Ruta finalizada sin incidentes.", CreatedAt: "2025-05-10T14:20:00Z", Hour: "14:00",
		},
		{
			ID: "emp_3", Name: "Kevin Blanco", Email: "k.blanco@logistics.com", Phone: "+34 611 666 777",
			Manager: "Marc Vila", Zone: "Barcelona-Port", Status: model.StatusPending,
			Signals: model.Signals{
				Anger: 0.15, Pain: 0.62, Anxiety: 0.8, Tiredness: 0.75, Distress: 0.6, Disgust: 0.2,
				Irony: 0.75, Doubt: 0.65, Sadness: 0.6, Frustration: 0.4, Confusion: 0.6, Boredom: 0.4,
				Contempt: 0.3, Satisfaction: 0.1, Determination: 0.2, Relief: 0.1, Security: 0.2,
				Amusement: 0.1, Sympathy: 0.2, Excitement: 0.1,
			},
			LastMessage: "Sí, sí, todo perfecto, no te preocupes.", CreatedAt: "2025-05-10T09:15:00Z", Hour: "09:00",
		},
		{
			ID: "emp_4", Name: "Elena Soler", Email: "e.soler@logistics.com", Phone: "+34 611 888 999",
			Manager: "Marc Vila", Zone: "Barcelona-Port", Status: model.StatusInProcess,
			Signals: model.Signals{
				Anger: 0.4, Pain: 0.2, Anxiety: 0.3, Tiredness: 0.5, Distress: 0.2, Disgust: 0.1,
				Irony: 0.1, Doubt: 0.3, Sadness: 0.2, Frustration: 0.9, Confusion: 0.8, Boredom: 0.3,
				Contempt: 0.1, Satisfaction: 0.4, Determination: 0.8, Relief: 0.7, Security: 0.5,
				Amusement: 0.2, Sympathy: 0.3, Excitement: 0.3,
			},
			LastMessage: "Mucha confusión con la nueva actualización.", CreatedAt: "2025-05-10T11:45:00Z", Hour: "11:00",
		},
		{
			ID: "emp_5", Name: "Javier Ruiz", Email: "j.ruiz@logistics.com", Phone: "+34 611 000 111",
			Manager: "Sonia Raga", Zone: "Madrid-Norte", Status: model.StatusPending,
			Signals: model.Signals{
				Anger: 0.1, Pain: 0.1, Anxiety: 0.1, Tiredness: 0.3, Distress: 0.1, Disgust: 0.1,
				Irony: 0.1, Doubt: 0.1, Sadness: 0.1, Frustration: 0.2, Confusion: 0.1, Boredom: 0.8,
				Contempt: 0.6, Satisfaction: 0.1, Determination: 0.3, Relief: 0.1, Security: 0.2,
				Amusement: 0.1, Sympathy: 0.2, Excitement: 0.1,
			},
			LastMessage: "Día monótono, poca actividad.", CreatedAt: "2025-05-10T10:00:00Z", Hour: "18:00",
		},
		{
			ID: "emp_6", Name: "Sofia Vega", Email: "s.vega@logistics.com", Phone: "+34 611 555 111",
			Manager: "Marc Vila", Zone: "Valencia", Status: model.StatusAddressed,
			Signals: model.Signals{
				Anger: 0.9, Pain: 0.1, Anxiety: 0.7, Tiredness: 0.8, Distress: 0.5, Disgust: 0.2,
				Irony: 0.1, Doubt: 0.1, Sadness: 0.1, Frustration: 0.8, Confusion: 0.1, Boredom: 0.1,
				Contempt: 0.1, Satisfaction: 0.2, Determination: 0.1, Relief: 0.1, Security: 0.3,
				Amusement: 0.1, Sympathy: 0.1, Excitement: 0.1,
			},
			LastMessage: "Atascos en la entrada del puerto.", CreatedAt: "2025-05-10T18:00:00Z", Hour: "18:00",
		},
	}
}
