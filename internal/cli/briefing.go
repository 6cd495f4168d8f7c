package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/mindfleet/internal/analytics"
	"github.com/ppiankov/mindfleet/internal/pipeline"
)

var (
	checkProvider bool
	noCache       bool
)

// briefingCmd represents the briefing command
var briefingCmd = &cobra.Command{
	Use:   "briefing",
	Short: "Generate the executive briefing for the current indicators",
	Long: `Briefing sends the one-line data summary to the configured LLM provider
and prints three key points. Failures print the fallback text instead.

Example:
  MINDFLEET_LLM_PROVIDER=openai mindfleet briefing
  mindfleet briefing --check`,
	Args: cobra.NoArgs,
	RunE: runBriefing,
}

func init() {
	rootCmd.AddCommand(briefingCmd)

	briefingCmd.Flags().BoolVar(&checkProvider, "check", false, "only check that the provider answers")
	briefingCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the briefing cache (force a fresh request)")
}

func runBriefing(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	briefer, err := pipeline.NewBriefer(cfg, logger)
	if err != nil {
		return fmt.Errorf("configure provider: %w", err)
	}
	if !briefer.IsEnabled() {
		return fmt.Errorf("no LLM provider configured (set llm.provider or MINDFLEET_LLM_PROVIDER)")
	}

	out := cmd.OutOrStdout()

	if checkProvider {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		if !briefer.Check(ctx) {
			return fmt.Errorf("provider %s is not reachable", briefer.ProviderName())
		}
		fmt.Fprintf(out, "✓ %s is available\n", briefer.ProviderName())
		return nil
	}

	_, r, err := pipeline.NewPipeline(cfg, logger).LoadRoster(cmd.Context())
	if err != nil {
		return err
	}
	summary := analytics.NewAggregator().Compute(r.Employees())

	b := briefer.GenerateBriefing(cmd.Context(), summary.DataSummary())
	fmt.Fprintln(out, b.Text)

	for _, w := range b.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "\nRequest: %s\nModel: %s/%s (cached: %v, tokens: %d)\n",
			b.Request, b.Provider, b.Model, b.Cached, b.TokensUsed)
	}
	return nil
}
