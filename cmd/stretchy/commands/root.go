// Package commands implements the stretchy CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/stretchy/internal/logging"
)

type rootFlags struct {
	logLevel string
	human    bool
}

// NewRootCmd builds the stretchy command tree.
func NewRootCmd(version string) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "stretchy",
		Short: "Stretchy scroll header toolkit",
		Long: `Stretchy drives a scroll header with a swipeable background gallery.

Replay recorded gesture scripts, preview a header in the terminal, and
check header configuration files.`,
		Example: `  stretchy init                     Write a default stretchy.toml
  stretchy validate stretchy.toml   Check a header configuration
  stretchy simulate swipe.yaml      Replay a gesture script
  stretchy preview stretchy.toml    Interactive terminal preview`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error, disabled)")
	cmd.PersistentFlags().BoolVar(&flags.human, "human", false, "Human-readable log output")

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newSimulateCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

// logger builds the command's logger writing to stderr.
func (f *rootFlags) logger(cmd *cobra.Command) (*logging.Logger, error) {
	log, err := logging.New(logging.Options{
		Level:         f.logLevel,
		HumanReadable: f.human,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", f.logLevel, err)
	}
	return log, nil
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "stretchy version %s\n", version)
			return nil
		},
	}
}
