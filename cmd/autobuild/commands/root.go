// Package commands implements the CLI commands for the autobuild tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/autobuild/internal/app"
	"go.trai.ch/autobuild/internal/build"
)

// CLI represents the command line interface for autobuild.
type CLI struct {
	app     Application
	format  LogFormatter
	rootCmd *cobra.Command

	file string
	json bool
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, file string, targetNames []string, opts app.RunOptions) error
	Hash(ctx context.Context, file, nodeName string) (app.HashReport, error)
	Clean(ctx context.Context, file string) error
}

// LogFormatter switches the log output to JSON records.
type LogFormatter interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. format may be nil.
func New(a Application, format LogFormatter) *CLI {
	rootCmd := &cobra.Command{
		Use:           "autobuild",
		Short:         "Run configure/make builds as cached, relocatable nodes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		format:  format,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.file, "file", "f", ".",
		"Buildfile, or directory containing autobuild.yaml or autobuild.toml")
	rootCmd.PersistentFlags().BoolVar(&c.json, "json", false, "Emit logs and reports as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.format != nil {
			c.format.SetJSON(c.json)
		}
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newHashCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
