package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/autobuild/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [nodes...]",
		Short: "Build the specified nodes and their dependencies",
		Long:  `Build the specified nodes and their dependencies. Use "all" to build every node.`,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			noCache, _ := cmd.Flags().GetBool("no-cache")
			jobs, _ := cmd.Flags().GetInt("jobs")
			metricsFile, _ := cmd.Flags().GetString("metrics-file")

			return c.app.Run(cmd.Context(), c.file, args, app.RunOptions{
				NoCache:     noCache,
				Jobs:        jobs,
				MetricsFile: metricsFile,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass build records and force execution")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum concurrent node builds (0 uses one per CPU)")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics of the run to this file")
	return cmd
}
