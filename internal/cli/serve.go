package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/mindfleet/internal/pipeline"
	"github.com/ppiankov/mindfleet/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Serve exposes the dashboard to MCP clients over stdio. Tools:
fleet_summary, fire_list, search_fleet, employee_profile, set_status
and executive_briefing. Status changes live for the life of the process.

Logs go to stderr; stdout carries the protocol.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		d, err := pipeline.NewPipeline(cfg, logger).NewDashboard(cmd.Context())
		if err != nil {
			return err
		}
		defer d.Close()

		logger.WithField("fleet", d.Fleet()).Info("serving MCP over stdio")
		if err := server.Serve(server.New(d)); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
