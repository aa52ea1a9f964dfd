package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <node>",
		Short: "Print the fingerprint and input digest of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Hash(cmd.Context(), c.file, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			_, _ = fmt.Fprintf(out, "fingerprint: %s\ninput hash:  %s\n", report.Fingerprint, report.InputHash)
			return nil
		},
	}
}
