package server

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ppiankov/mindfleet/internal/pipeline"
	"github.com/ppiankov/mindfleet/internal/roster"
)

func TestNew_RegistersTools(t *testing.T) {
	r, err := roster.NewMockSource(1).Load(t.Context())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := pipeline.NewDashboard(t.Context(), "mock", r, nil, "", nil)
	defer d.Close()

	s := New(d)

	resp := s.HandleMessage(t.Context(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	for _, name := range []string{"fleet_summary", "fire_list", "search_fleet", "employee_profile", "set_status", "executive_briefing"} {
		if !strings.Contains(string(data), `"`+name+`"`) {
			t.Errorf("expected tool %s in tools/list response", name)
		}
	}
}
