package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/mindfleet/internal/analytics"
	"github.com/ppiankov/mindfleet/internal/pipeline"
)

var (
	outJSON    string
	outMD      string
	noBriefing bool
	search     string
	detailed   bool
	cmdTimeout time.Duration
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Compute the fleet indicators and print them",
	Long: `Summary loads the roster and computes every fleet indicator:
- Global risk gauge (0-100) and its band
- Fire list of unattended high-risk employees
- Incoherence rate, cohesion index and resilience ranking
- Anxiety by manager and anger by hour

When an LLM provider is configured an executive briefing is added.

Example:
  mindfleet summary
  mindfleet summary --roster fleet.yaml --json report.json --md report.md`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Print the fleet monitoring table",
	Long: `Fleet lists every employee with status, risk score (0-10) and profile flags.
A trailing "!" marks a score above the fire threshold.

With --detailed the table becomes a heatmap of ten signals in percent:
anger, anxiety, tiredness, sadness, frustration, determination,
satisfaction, doubt, confusion and sympathy.

Example:
  mindfleet fleet --search vila
  mindfleet fleet --detailed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		_, r, err := pipeline.NewPipeline(cfg, logger).LoadRoster(cmd.Context())
		if err != nil {
			return err
		}
		employees := r.Filter(search)
		renderer := pipeline.NewRenderer(false)
		if detailed {
			return renderer.RenderHeatmap(cmd.OutOrStdout(), analytics.Heatmap(employees))
		}
		return renderer.RenderRows(cmd.OutOrStdout(), analytics.Rows(employees))
	},
}

var fireListCmd = &cobra.Command{
	Use:   "firelist",
	Short: "Print employees that need urgent intervention",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		_, r, err := pipeline.NewPipeline(cfg, logger).LoadRoster(cmd.Context())
		if err != nil {
			return err
		}
		summary := analytics.NewAggregator().Compute(r.Employees())
		return pipeline.NewRenderer(false).RenderFireList(cmd.OutOrStdout(), summary.FireList)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile <id>",
	Short: "Print the detailed profile of one employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		_, r, err := pipeline.NewPipeline(cfg, logger).LoadRoster(cmd.Context())
		if err != nil {
			return err
		}

		e, ok := r.Find(args[0])
		if !ok {
			return fmt.Errorf("no employee with id %q", args[0])
		}
		data, err := json.MarshalIndent(analytics.ProfileOf(e), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(fleetCmd)
	rootCmd.AddCommand(fireListCmd)
	rootCmd.AddCommand(profileCmd)

	summaryCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	summaryCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	summaryCmd.Flags().BoolVar(&noBriefing, "no-briefing", false, "skip the LLM briefing even if a provider is configured")
	summaryCmd.Flags().DurationVar(&cmdTimeout, "timeout", 2*time.Minute, "overall timeout")

	fleetCmd.Flags().StringVar(&search, "search", "", "filter by employee or manager name")
	fleetCmd.Flags().BoolVar(&detailed, "detailed", false, "print the signal heatmap instead of the risk table")
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
	defer cancel()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if noBriefing {
		cfg.LLM.Provider = ""
	}

	p := pipeline.NewPipeline(cfg, logger)
	fleet, r, err := p.LoadRoster(ctx)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Loaded %d employees from %s\n", r.Len(), fleet)
		if p.Briefer().IsEnabled() {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚙️  Requesting briefing from %s...\n", p.Briefer().ProviderName())
		}
	}

	report := p.Summarize(ctx, fleet, r)

	if err := p.Renderer().RenderTerminal(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if err := p.RenderReport(report, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
