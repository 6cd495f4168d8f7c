package llm

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ppiankov/mindfleet/internal/cache"
	"github.com/ppiankov/mindfleet/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	response  *SummarizeResponse
	errs      []error // Returned in order, one per call, before response
	delay     time.Duration
	calls     int32
	lastReq   SummarizeRequest
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	n := int(atomic.AddInt32(&m.calls, 1))
	m.lastReq = req

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if n <= len(m.errs) && m.errs[n-1] != nil {
		return nil, m.errs[n-1]
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

type countingLimiter struct {
	keys []string
	err  error
}

func (l *countingLimiter) Wait(ctx context.Context, key string) error {
	l.keys = append(l.keys, key)
	return l.err
}

func testOptions() BrieferOptions {
	cfg := model.DefaultConfig()
	opts := BrieferOptionsFromModel(*cfg)
	opts.Model = "mock-model"
	opts.RetryDelay = time.Millisecond
	opts.Timeout = time.Second
	return opts
}

const summaryText = "Risk: 39.9%. Alerts: 0. Incoherence: 33%. Cohesion: 24."

func TestBriefer_Disabled(t *testing.T) {
	b := NewBriefer(nil, testOptions(), nil, nil, nil)

	briefing := b.GenerateBriefing(context.Background(), summaryText)

	if b.IsEnabled() || b.ProviderName() != "" {
		t.Error("Expected briefer to be disabled")
	}
	if briefing.Enabled {
		t.Error("Expected briefing to be marked disabled")
	}
	if !briefing.Fallback || briefing.Text != "Connecting to the AI for strategic analysis..." {
		t.Errorf("Expected fallback text, got %q", briefing.Text)
	}
	if b.Check(context.Background()) {
		t.Error("Expected Check to fail without a provider")
	}
}

func TestBriefer_Success(t *testing.T) {
	provider := &MockProvider{
		name:     "mock",
		response: &SummarizeResponse{Summary: "**Risk** is moderate.\n# Alerts\n* none", Model: "mock-model-1", TokensUsed: 42},
	}
	limiter := &countingLimiter{}
	b := NewBriefer(provider, testOptions(), nil, limiter, nil)

	briefing := b.GenerateBriefing(context.Background(), summaryText)

	if briefing.Fallback {
		t.Fatalf("Expected real briefing, got fallback: %v", briefing.Warnings)
	}
	if briefing.Text != "Risk is moderate.\nAlerts\n- none" {
		t.Errorf("Expected sanitized text, got %q", briefing.Text)
	}
	if briefing.Model != "mock-model-1" || briefing.TokensUsed != 42 {
		t.Errorf("Unexpected metadata: %+v", briefing)
	}
	if briefing.Request != summaryText {
		t.Errorf("Expected request to echo the data summary, got %q", briefing.Request)
	}
	if provider.lastReq.DataSummary != summaryText || provider.lastReq.Model != "mock-model" {
		t.Errorf("Unexpected provider request: %+v", provider.lastReq)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "mock" {
		t.Errorf("Expected one limiter wait keyed by provider, got %v", limiter.keys)
	}
}

func TestBriefer_ProviderErrorFallsBack(t *testing.T) {
	provider := &MockProvider{
		name: "mock",
		errs: []error{errors.New("boom"), errors.New("boom again")},
	}
	b := NewBriefer(provider, testOptions(), nil, nil, nil)

	briefing := b.GenerateBriefing(context.Background(), summaryText)

	if !briefing.Fallback {
		t.Fatal("Expected fallback after exhausting retries")
	}
	if briefing.Text != "Connecting to the AI for strategic analysis..." {
		t.Errorf("Unexpected fallback text: %q", briefing.Text)
	}
	if atomic.LoadInt32(&provider.calls) != 2 {
		t.Errorf("Expected 1 call plus 1 retry, got %d", provider.calls)
	}
	if len(briefing.Warnings) == 0 || !strings.Contains(briefing.Warnings[0], "boom") {
		t.Errorf("Expected warning to carry the cause, got %v", briefing.Warnings)
	}
}

func TestBriefer_RetryRecovers(t *testing.T) {
	provider := &MockProvider{
		name:     "mock",
		errs:     []error{errors.New("transient")},
		response: &SummarizeResponse{Summary: "Recovered."},
	}
	b := NewBriefer(provider, testOptions(), nil, nil, nil)

	briefing := b.GenerateBriefing(context.Background(), summaryText)

	if briefing.Fallback || briefing.Text != "Recovered." {
		t.Errorf("Expected retry to recover, got %+v", briefing)
	}
}

func TestBriefer_Timeout(t *testing.T) {
	provider := &MockProvider{
		name:     "mock",
		delay:    time.Second,
		response: &SummarizeResponse{Summary: "too late"},
	}
	opts := testOptions()
	opts.Timeout = 20 * time.Millisecond
	b := NewBriefer(provider, opts, nil, nil, nil)

	start := time.Now()
	briefing := b.GenerateBriefing(context.Background(), summaryText)

	if !briefing.Fallback {
		t.Error("Expected fallback on timeout")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("Expected timeout to bound the request, took %v", time.Since(start))
	}
}

func TestBriefer_EmptyResponse(t *testing.T) {
	provider := &MockProvider{name: "mock", response: &SummarizeResponse{Summary: "  \n```\n```  "}}
	b := NewBriefer(provider, testOptions(), nil, nil, nil)

	briefing := b.GenerateBriefing(context.Background(), summaryText)

	if briefing.Text != "No insights could be generated at this time." {
		t.Errorf("Expected empty text, got %q", briefing.Text)
	}
	if !briefing.Fallback {
		t.Error("Expected empty response to be flagged as fallback")
	}
}

func TestBriefer_NilResponse(t *testing.T) {
	provider := &MockProvider{name: "mock"}
	opts := testOptions()
	opts.Retries = 0
	b := NewBriefer(provider, opts, nil, nil, nil)

	briefing := b.GenerateBriefing(context.Background(), summaryText)

	if !briefing.Fallback || briefing.Text != opts.FallbackText {
		t.Errorf("Expected fallback for nil response, got %+v", briefing)
	}
}

func TestBriefer_CachesByDataSummary(t *testing.T) {
	provider := &MockProvider{name: "mock", response: &SummarizeResponse{Summary: "Cached text."}}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	b := NewBriefer(provider, testOptions(), c, nil, nil)

	first := b.GenerateBriefing(context.Background(), summaryText)
	second := b.GenerateBriefing(context.Background(), summaryText)

	if first.Cached || !second.Cached {
		t.Errorf("Expected second call to be served from cache, got %v then %v", first.Cached, second.Cached)
	}
	if second.Text != "Cached text." {
		t.Errorf("Unexpected cached text: %q", second.Text)
	}
	if atomic.LoadInt32(&provider.calls) != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.calls)
	}

	b.GenerateBriefing(context.Background(), "Risk: 80.0%. Alerts: 2. Incoherence: 0%. Cohesion: 10.")
	if atomic.LoadInt32(&provider.calls) != 2 {
		t.Errorf("Expected a changed summary to reach the provider, got %d calls", provider.calls)
	}
}

func TestBriefer_FallbackNotCached(t *testing.T) {
	provider := &MockProvider{name: "mock", errs: []error{errors.New("down"), errors.New("down")}}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	b := NewBriefer(provider, testOptions(), c, nil, nil)

	b.GenerateBriefing(context.Background(), summaryText)

	if c.Len() != 0 {
		t.Errorf("Expected fallback text to stay out of the cache, got %d entries", c.Len())
	}
}

func TestBriefer_LimiterErrorFallsBack(t *testing.T) {
	provider := &MockProvider{name: "mock", response: &SummarizeResponse{Summary: "unused"}}
	logger, hook := test.NewNullLogger()
	b := NewBriefer(provider, testOptions(), nil, &countingLimiter{err: errors.New("budget exhausted")}, logger)

	briefing := b.GenerateBriefing(context.Background(), summaryText)

	if !briefing.Fallback {
		t.Error("Expected fallback when the limiter refuses")
	}
	if atomic.LoadInt32(&provider.calls) != 0 {
		t.Error("Expected provider not to be called")
	}
	if hook.LastEntry() == nil || !strings.Contains(hook.LastEntry().Message, "fallback") {
		t.Error("Expected a fallback warning to be logged")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain\ntext", "plain\ntext"},
		{"## Key points\n1. One", "Key points\n1. One"},
		{"**bold** and __strong__", "bold and strong"},
		{"*Riesgo* alto", "Riesgo alto"},
		{"_nota_ final", "nota final"},
		{"1. **Fatiga** en *Madrid-Sur*", "1. Fatiga en Madrid-Sur"},
		{"__x**", "__x**"},
		{"**x__", "**x__"},
		{"snake_case_name", "snake_case_name"},
		{"2 * 3 * 4", "2 * 3 * 4"},
		{"* a\n  + b", "- a\n  - b"},
		{"```text\ninside\n```", "inside"},
		{"use `code`", "use code"},
		{"a\r\n\r\n\r\n\r\nb", "a\n\nb"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
