// Package cli is the reconnect command line: the API server plus a few
// operator tools around it.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sakif/reconnect/internal/config"
)

type rootOptions struct {
	envFiles []string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "reconnect",
		Short: "Re_Connect relationship-recovery coaching API",
		Long: `reconnect runs the Re_Connect API server and the tools that go with it.

Settings come from the environment. Files named with --env-file are read
first; variables already set in the environment take precedence.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"},
		"dotenv files to load before reading the environment")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newTokenCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	return config.Load(o.envFiles...)
}

func newLogger(cmd *cobra.Command, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.OutOrStdout(), &slog.HandlerOptions{Level: level}))
}
