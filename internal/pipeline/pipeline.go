package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/mindfleet/internal/analytics"
	"github.com/ppiankov/mindfleet/internal/cache"
	"github.com/ppiankov/mindfleet/internal/llm"
	"github.com/ppiankov/mindfleet/internal/model"
	"github.com/ppiankov/mindfleet/internal/roster"
	"github.com/ppiankov/mindfleet/internal/worker"
)

// Pipeline wires roster loading, analytics, briefing and rendering together
type Pipeline struct {
	aggregator *analytics.Aggregator
	briefer    *llm.Briefer
	renderer   *Renderer
	config     *model.Config
	logger     logrus.FieldLogger
}

// NewPipeline creates a pipeline. A provider that fails to initialise
// only disables briefings; it never stops the analytics.
func NewPipeline(cfg *model.Config, logger logrus.FieldLogger) *Pipeline {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	briefer, err := NewBriefer(cfg, logger)
	if err != nil {
		logger.WithError(err).Warn("failed to initialize LLM provider, briefings disabled")
		briefer = llm.NewBriefer(nil, llm.BrieferOptionsFromModel(*cfg), nil, nil, logger)
	}

	return &Pipeline{
		aggregator: analytics.NewAggregator(),
		briefer:    briefer,
		renderer:   NewRenderer(true),
		config:     cfg,
		logger:     logger,
	}
}

// NewBriefer builds the configured briefer with its cache and rate limiter
func NewBriefer(cfg *model.Config, logger logrus.FieldLogger) (*llm.Briefer, error) {
	llmConfig := llm.WithEnvDefaults(llm.ConfigFromModel(cfg.LLM))
	provider, err := llm.NewProvider(llmConfig)
	if err != nil {
		return nil, err
	}

	opts := llm.BrieferOptionsFromModel(*cfg)
	opts.CacheTTL = cfg.Cache.DiskTTL

	var limiter llm.RateLimiter
	if cfg.Briefing.RequestsPerMinute > 0 {
		limiter = worker.PerMinute(cfg.Briefing.RequestsPerMinute)
	}

	return llm.NewBriefer(provider, opts, cache.FromConfig(cfg.Cache), limiter, logger), nil
}

// Briefer returns the pipeline's briefer
func (p *Pipeline) Briefer() *llm.Briefer {
	return p.briefer
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// LoadRoster loads the configured roster source
func (p *Pipeline) LoadRoster(ctx context.Context) (string, roster.Roster, error) {
	source := roster.NewSource(p.config.Roster.Source, p.config.Roster.Seed, p.logger)
	r, err := source.Load(ctx)
	if err != nil {
		return "", roster.Roster{}, fmt.Errorf("load roster: %w", err)
	}
	return source.Name(), r, nil
}

// NewDashboard loads the configured roster and opens a dashboard over it
func (p *Pipeline) NewDashboard(ctx context.Context) (*Dashboard, error) {
	fleet, r, err := p.LoadRoster(ctx)
	if err != nil {
		return nil, err
	}
	return NewDashboard(ctx, fleet, r, p.briefer, p.config.Briefing.PendingText, p.logger), nil
}

// Summarize computes a report for a roster, requesting a briefing when enabled.
// The briefing is produced after the metrics and never affects them.
func (p *Pipeline) Summarize(ctx context.Context, fleet string, r roster.Roster) *model.Report {
	summary := p.aggregator.Compute(r.Employees())
	report := BuildReport(fleet, r, summary, nil, time.Now().UTC())

	if p.briefer.IsEnabled() {
		briefing := p.briefer.GenerateBriefing(ctx, summary.DataSummary())
		report.Briefing = &briefing
	}
	return report
}

// SummarizeFile loads a roster file and summarises it
func (p *Pipeline) SummarizeFile(ctx context.Context, path string) (*model.Report, error) {
	source := &roster.FileSource{Path: path, Logger: p.logger.WithField("roster", path)}
	r, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return p.Summarize(ctx, source.Name(), r), nil
}

// RenderReport writes the report to the requested outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.logger.WithField("path", jsonPath).Debug("wrote JSON report")
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.logger.WithField("path", mdPath).Debug("wrote Markdown report")
	}

	return nil
}

// OutputPaths derives "<name>.json" and "<name>.md" in outDir for a roster path
func OutputPaths(outDir, rosterPath string) (string, string) {
	name := strings.TrimSuffix(filepath.Base(rosterPath), filepath.Ext(rosterPath))
	return filepath.Join(outDir, name+".json"), filepath.Join(outDir, name+".md")
}
