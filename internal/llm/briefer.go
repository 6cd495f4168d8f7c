package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/mindfleet/internal/cache"
	"github.com/ppiankov/mindfleet/internal/model"
)

// RateLimiter throttles provider calls per key
type RateLimiter interface {
	Wait(ctx context.Context, key string) error
}

// BrieferOptions bounds one briefing request
type BrieferOptions struct {
	Model        string
	MaxTokens    int
	Timeout      time.Duration // Whole request, retries included
	Retries      int
	RetryDelay   time.Duration // First backoff step
	CacheTTL     time.Duration // Zero uses the cache default
	FallbackText string
	EmptyText    string
}

// BrieferOptionsFromModel derives briefer options from the application config
func BrieferOptionsFromModel(cfg model.Config) BrieferOptions {
	return BrieferOptions{
		Model:        cfg.LLM.Model,
		MaxTokens:    cfg.LLM.MaxTokens,
		Timeout:      cfg.Briefing.Timeout,
		Retries:      cfg.Briefing.Retries,
		RetryDelay:   500 * time.Millisecond,
		FallbackText: cfg.Briefing.FallbackText,
		EmptyText:    cfg.Briefing.EmptyText,
	}
}

// Briefer produces executive briefings from a data summary.
// It never fails: provider errors, timeouts and malformed output become fallback text.
type Briefer struct {
	provider Provider
	opts     BrieferOptions
	cache    cache.Cache
	limiter  RateLimiter
	logger   logrus.FieldLogger
}

// NewBriefer creates a briefer. provider, c and limiter may be nil.
func NewBriefer(provider Provider, opts BrieferOptions, c cache.Cache, limiter RateLimiter, logger logrus.FieldLogger) *Briefer {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Briefer{
		provider: provider,
		opts:     opts,
		cache:    c,
		limiter:  limiter,
		logger:   logger,
	}
}

// IsEnabled reports whether a provider is configured
func (b *Briefer) IsEnabled() bool {
	return b.provider != nil
}

// ProviderName returns the provider name, or "" when disabled
func (b *Briefer) ProviderName() string {
	if b.provider == nil {
		return ""
	}
	return b.provider.Name()
}

// Check reports whether the provider answers
func (b *Briefer) Check(ctx context.Context) bool {
	if b.provider == nil {
		return false
	}
	return b.provider.IsAvailable(ctx)
}

// cachedBriefing is the cache payload
type cachedBriefing struct {
	Text       string `json:"text"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used"`
}

// GenerateBriefing requests a briefing for dataSummary
func (b *Briefer) GenerateBriefing(ctx context.Context, dataSummary string) model.Briefing {
	briefing := model.Briefing{
		Enabled: b.IsEnabled(),
		Request: dataSummary,
	}

	if b.provider == nil {
		briefing.Text = b.opts.FallbackText
		briefing.Fallback = true
		briefing.Warnings = append(briefing.Warnings, "no LLM provider configured")
		return briefing
	}

	briefing.Provider = b.provider.Name()
	briefing.Model = b.opts.Model
	key := cache.BriefingKey(briefing.Provider, b.opts.Model, dataSummary)

	if hit, ok := b.fromCache(key); ok {
		b.logger.WithFields(logrus.Fields{"provider": briefing.Provider}).Debug("briefing cache hit")
		briefing.Text = hit.Text
		briefing.Model = hit.Model
		briefing.TokensUsed = hit.TokensUsed
		briefing.Cached = true
		return briefing
	}

	if b.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.Timeout)
		defer cancel()
	}

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx, briefing.Provider); err != nil {
			return b.fallback(briefing, fmt.Errorf("rate limit: %w", err))
		}
	}

	resp, err := b.summarize(ctx, dataSummary)
	if err != nil {
		return b.fallback(briefing, err)
	}

	text := Sanitize(resp.Summary)
	if resp.Model != "" {
		briefing.Model = resp.Model
	}
	briefing.TokensUsed = resp.TokensUsed

	if text == "" {
		briefing.Text = b.opts.EmptyText
		briefing.Fallback = true
		briefing.Warnings = append(briefing.Warnings, "provider returned an empty briefing")
		return briefing
	}

	briefing.Text = text
	b.toCache(key, cachedBriefing{Text: text, Model: briefing.Model, TokensUsed: resp.TokensUsed})
	return briefing
}

func (b *Briefer) summarize(ctx context.Context, dataSummary string) (*SummarizeResponse, error) {
	delay := b.opts.RetryDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	policy := retrypolicy.NewBuilder[*SummarizeResponse]().
		WithBackoff(delay, 8*delay).
		WithMaxRetries(max(0, b.opts.Retries)).
		HandleIf(func(_ *SummarizeResponse, err error) bool {
			return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}).
		Build()

	req := SummarizeRequest{
		DataSummary: dataSummary,
		Model:       b.opts.Model,
		MaxTokens:   b.opts.MaxTokens,
	}

	return failsafe.With[*SummarizeResponse](policy).WithContext(ctx).Get(func() (*SummarizeResponse, error) {
		resp, err := b.provider.Summarize(ctx, req)
		if err == nil && resp == nil {
			err = errors.New("provider returned no response")
		}
		return resp, err
	})
}

func (b *Briefer) fallback(briefing model.Briefing, err error) model.Briefing {
	b.logger.WithFields(logrus.Fields{
		"provider": briefing.Provider,
		"error":    err.Error(),
	}).Warn("briefing failed, using fallback text")

	briefing.Text = b.opts.FallbackText
	briefing.Fallback = true
	briefing.Warnings = append(briefing.Warnings, err.Error())
	return briefing
}

func (b *Briefer) fromCache(key string) (cachedBriefing, bool) {
	if b.cache == nil {
		return cachedBriefing{}, false
	}
	raw, ok := b.cache.Get(key)
	if !ok {
		return cachedBriefing{}, false
	}
	var hit cachedBriefing
	if err := json.Unmarshal(raw, &hit); err != nil || hit.Text == "" {
		return cachedBriefing{}, false
	}
	return hit, true
}

func (b *Briefer) toCache(key string, entry cachedBriefing) {
	if b.cache == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := b.cache.Set(key, raw, b.opts.CacheTTL); err != nil {
		b.logger.WithError(err).Debug("briefing cache write failed")
	}
}

var (
	headingPrefix = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`)
	bulletPrefix  = regexp.MustCompile(`(?m)^(\s*)[*+]\s+`)
	codeFence     = regexp.MustCompile("(?m)^\\s*```.*$\\n?")
	blankRuns     = regexp.MustCompile(`\n{3,}`)

	// Each delimiter only closes its own kind; bold runs before italic
	strongStar       = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	strongUnderscore = regexp.MustCompile(`__([^_\n]+)__`)
	italicStar       = regexp.MustCompile(`\*([^*\s](?:[^*\n]*[^*\s])?)\*`)
	italicUnderscore = regexp.MustCompile(`(?m)(^|[^\w])_([^_\n]+)_([^\w]|$)`)
)

// Sanitize reduces provider output to plain text with line breaks
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = codeFence.ReplaceAllString(text, "")
	text = headingPrefix.ReplaceAllString(text, "")
	text = bulletPrefix.ReplaceAllString(text, "$1- ")
	text = strongStar.ReplaceAllString(text, "$1")
	text = strongUnderscore.ReplaceAllString(text, "$1")
	text = italicStar.ReplaceAllString(text, "$1")
	text = italicUnderscore.ReplaceAllString(text, "$1$2$3")
	text = strings.ReplaceAll(text, "`", "")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
