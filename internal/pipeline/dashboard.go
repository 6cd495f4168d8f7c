package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/mindfleet/internal/analytics"
	"github.com/ppiankov/mindfleet/internal/llm"
	"github.com/ppiankov/mindfleet/internal/model"
	"github.com/ppiankov/mindfleet/internal/roster"
)

// Dashboard owns the current roster snapshot and its derived views.
// Every mutation runs mutate -> recompute -> request briefing, in that order.
// Briefings arrive asynchronously; only the newest request may publish.
type Dashboard struct {
	mu sync.Mutex

	fleet      string
	roster     roster.Roster
	summary    model.Summary
	aggregator *analytics.Aggregator

	briefer       *llm.Briefer
	briefing      model.Briefing
	lastRequested string
	seq           uint64
	latestDone    chan struct{}
	closed        bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger logrus.FieldLogger
}

// settled is returned when no briefing request was started
var settled = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// NewDashboard computes the initial summary and requests the first briefing.
// ctx bounds every background briefing request.
func NewDashboard(ctx context.Context, fleet string, r roster.Roster, briefer *llm.Briefer, pendingText string, logger logrus.FieldLogger) *Dashboard {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(ctx)

	d := &Dashboard{
		fleet:      fleet,
		roster:     r,
		aggregator: analytics.NewAggregator(),
		briefer:    briefer,
		briefing: model.Briefing{
			Enabled:  briefer != nil && briefer.IsEnabled(),
			Text:     pendingText,
			Fallback: true,
		},
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}

	d.mu.Lock()
	d.recompute()
	d.requestBriefing(false)
	d.mu.Unlock()

	return d
}

// Fleet returns the roster source label
func (d *Dashboard) Fleet() string {
	return d.fleet
}

// Roster returns the current snapshot
func (d *Dashboard) Roster() roster.Roster {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.roster
}

// Summary returns the summary of the current snapshot
func (d *Dashboard) Summary() model.Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summary
}

// Briefing returns the latest published briefing, or the pending placeholder
func (d *Dashboard) Briefing() model.Briefing {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.briefing
}

// Search returns fleet table rows whose name or manager matches term
func (d *Dashboard) Search(term string) []model.EmployeeRow {
	return analytics.Rows(d.Roster().Filter(term))
}

// Profile returns the detail breakdown for one employee
func (d *Dashboard) Profile(id string) (model.Profile, bool) {
	e, ok := d.Roster().Find(id)
	if !ok {
		return model.Profile{}, false
	}
	return analytics.ProfileOf(e), true
}

// SetStatus applies a status transition and returns the status the employee
// held right before it. Unknown ids and invalid statuses are no-ops that
// leave the roster, summary and briefing untouched.
func (d *Dashboard) SetStatus(id string, status model.Status) (model.Status, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev, _ := d.roster.Find(id)
	next, ok := d.mutate(id, status)
	d.logger.WithFields(logrus.Fields{
		"employee_id": id,
		"status":      status,
		"changed":     ok,
	}).Debug("status mutation")
	if !ok {
		return "", false
	}
	if prev.Status == status {
		return prev.Status, true
	}

	d.roster = next
	d.recompute()
	d.requestBriefing(false)
	return prev.Status, true
}

// Resolve marks an employee as addressed
func (d *Dashboard) Resolve(id string) bool {
	_, ok := d.SetStatus(id, model.StatusAddressed)
	return ok
}

// RefreshBriefing requests a briefing for the current summary even if it was
// already requested. The returned channel closes once that request has finished.
func (d *Dashboard) RefreshBriefing() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.requestBriefing(true)
}

// WaitBriefing blocks until the newest briefing request has finished.
// Requests issued while waiting extend the wait; superseded ones do not.
func (d *Dashboard) WaitBriefing() {
	for {
		d.mu.Lock()
		done := d.latestDone
		d.mu.Unlock()
		if done == nil {
			return
		}

		<-done

		d.mu.Lock()
		latest := d.latestDone == done
		d.mu.Unlock()
		if latest {
			return
		}
	}
}

// Close cancels in-flight briefing requests and waits for them.
// No request is started after Close.
func (d *Dashboard) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}

// Report snapshots the dashboard for rendering
func (d *Dashboard) Report() *model.Report {
	d.mu.Lock()
	defer d.mu.Unlock()

	briefing := d.briefing
	return BuildReport(d.fleet, d.roster, d.summary, &briefing, time.Now().UTC())
}

// mutate is the only place the roster changes; callers hold mu
func (d *Dashboard) mutate(id string, status model.Status) (roster.Roster, bool) {
	return d.roster.WithStatus(id, status)
}

// recompute regenerates the whole summary; callers hold mu
func (d *Dashboard) recompute() {
	d.summary = d.aggregator.Compute(d.roster.Employees())
}

// requestBriefing starts an async briefing for the current summary; callers hold mu.
// Without force, an unchanged data summary does not trigger a new request.
// The returned channel closes when the request, if any, has published or been discarded.
func (d *Dashboard) requestBriefing(force bool) <-chan struct{} {
	if d.briefer == nil || d.closed {
		return settled
	}

	text := d.summary.DataSummary()
	if !force && text == d.lastRequested {
		return settled
	}

	d.seq++
	seq := d.seq
	d.lastRequested = text
	done := make(chan struct{})
	d.latestDone = done

	d.logger.WithFields(logrus.Fields{
		"seq":      seq,
		"provider": d.briefer.ProviderName(),
	}).Debug("briefing requested")

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(done)
		briefing := d.briefer.GenerateBriefing(d.ctx, text)
		d.publish(seq, briefing)
	}()
	return done
}

// publish stores a briefing unless a newer request has been issued since
func (d *Dashboard) publish(seq uint64, briefing model.Briefing) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.seq {
		d.logger.WithFields(logrus.Fields{
			"seq":    seq,
			"latest": d.seq,
		}).Debug("discarding stale briefing")
		return
	}
	d.briefing = briefing
}
