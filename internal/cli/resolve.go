package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/mindfleet/internal/model"
	"github.com/ppiankov/mindfleet/internal/pipeline"
	"github.com/ppiankov/mindfleet/internal/roster"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <id>[=status]...",
	Short: "Apply status changes and show how the indicators move",
	Long: `Resolve applies status changes to the loaded roster in order and prints
the indicators before and after. A bare id marks the employee as addressed.
Changes are not written back to the roster source.

Example:
  mindfleet resolve emp_1
  mindfleet resolve emp_1=in_process emp_3=addressed`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

// statusChange is one parsed resolve argument
type statusChange struct {
	id     string
	status model.Status
}

// parseChanges reads "id" and "id=status" arguments
func parseChanges(args []string) ([]statusChange, error) {
	changes := make([]statusChange, 0, len(args))
	for _, arg := range args {
		id, raw, found := strings.Cut(arg, "=")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("invalid change %q: empty id", arg)
		}

		status := model.StatusAddressed
		if found {
			parsed, err := roster.ParseStatus(raw)
			if err != nil || strings.TrimSpace(raw) == "" {
				return nil, fmt.Errorf("invalid change %q: %w", arg, roster.ErrUnknownStatus)
			}
			status = parsed
		}
		changes = append(changes, statusChange{id: id, status: status})
	}
	return changes, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	changes, err := parseChanges(args)
	if err != nil {
		return err
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, logger)
	fleet, r, err := p.LoadRoster(cmd.Context())
	if err != nil {
		return err
	}

	// Metrics only; no briefing is requested for a what-if run
	d := pipeline.NewDashboard(cmd.Context(), fleet, r, nil, "", logger)
	defer d.Close()

	out := cmd.OutOrStdout()
	printState(out, "Before", d)

	for _, c := range changes {
		prev, ok := d.SetStatus(c.id, c.status)
		if !ok {
			fmt.Fprintf(out, "✗ %s: no such employee\n", c.id)
			continue
		}
		e, _ := d.Roster().Find(c.id)
		fmt.Fprintf(out, "✓ %s (%s): %s -> %s\n", c.id, e.Name, prev, c.status)
	}

	printState(out, "After", d)
	return nil
}

func printState(w io.Writer, label string, d *pipeline.Dashboard) {
	s := d.Summary()
	fmt.Fprintf(w, "%s: %s\n", label, s.DataSummary())
	for _, f := range s.FireList {
		fmt.Fprintf(w, "  ! %s (%s)\n", f.Name, f.ID)
	}
}
