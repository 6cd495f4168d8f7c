package model

// Status is the intervention state of a tracked employee
type Status string

const (
	StatusPending   Status = "pending"    // Nobody has picked the case up yet
	StatusInProcess Status = "in_process" // Someone is working on it
	StatusAddressed Status = "addressed"  // Intervention resolved
)

// Valid reports whether s is one of the canonical statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProcess, StatusAddressed:
		return true
	}
	return false
}

// Employee is one tracked person with their measured emotional signals.
// Signals are independent features in [0,1] and do not sum to 1.
type Employee struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Manager string `json:"manager" yaml:"manager"` // Plain name, grouped by exact string equality
	Zone    string `json:"zone" yaml:"zone"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Status  Status `json:"status" yaml:"status"`

	Signals `yaml:",inline"`

	LastMessage string         `json:"last_message" yaml:"last_message"`
	Hour        string         `json:"hour,omitempty" yaml:"hour,omitempty"`       // Coarse bucket label, e.g. "09:00"
	CreatedAt   string         `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	History     []HistoryPoint `json:"history,omitempty" yaml:"history,omitempty"` // Display only
}

// Signals holds the twenty affect dimensions measured for an employee
type Signals struct {
	Anger         float64 `json:"anger" yaml:"anger"`
	Pain          float64 `json:"pain" yaml:"pain"`
	Anxiety       float64 `json:"anxiety" yaml:"anxiety"`
	Tiredness     float64 `json:"tiredness" yaml:"tiredness"`
	Distress      float64 `json:"distress" yaml:"distress"`
	Disgust       float64 `json:"disgust" yaml:"disgust"`
	Irony         float64 `json:"irony" yaml:"irony"`
	Doubt         float64 `json:"doubt" yaml:"doubt"`
	Sadness       float64 `json:"sadness" yaml:"sadness"`
	Frustration   float64 `json:"frustration" yaml:"frustration"`
	Confusion     float64 `json:"confusion" yaml:"confusion"`
	Boredom       float64 `json:"boredom" yaml:"boredom"`
	Contempt      float64 `json:"contempt" yaml:"contempt"`
	Satisfaction  float64 `json:"satisfaction" yaml:"satisfaction"`
	Determination float64 `json:"determination" yaml:"determination"`
	Relief        float64 `json:"relief" yaml:"relief"`
	Security      float64 `json:"security" yaml:"security"`
	Amusement     float64 `json:"amusement" yaml:"amusement"`
	Sympathy      float64 `json:"sympathy" yaml:"sympathy"`
	Excitement    float64 `json:"excitement" yaml:"excitement"`
}

// Named returns every signal keyed by its field name, in declaration order
func (s Signals) Named() []NamedSignal {
	return []NamedSignal{
		{"anger", s.Anger},
		{"pain", s.Pain},
		{"anxiety", s.Anxiety},
		{"tiredness", s.Tiredness},
		{"distress", s.Distress},
		{"disgust", s.Disgust},
		{"irony", s.Irony},
		{"doubt", s.Doubt},
		{"sadness", s.Sadness},
		{"frustration", s.Frustration},
		{"confusion", s.Confusion},
		{"boredom", s.Boredom},
		{"contempt", s.Contempt},
		{"satisfaction", s.Satisfaction},
		{"determination", s.Determination},
		{"relief", s.Relief},
		{"security", s.Security},
		{"amusement", s.Amusement},
		{"sympathy", s.Sympathy},
		{"excitement", s.Excitement},
	}
}

// NamedSignal pairs a signal name with its value
type NamedSignal struct {
	Name  string
	Value float64
}

// HistoryPoint is one sample of the short stress trend shown next to an employee
type HistoryPoint struct {
	Label  string  `json:"label" yaml:"label"`
	Stress float64 `json:"stress" yaml:"stress"`
}
