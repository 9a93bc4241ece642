package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	verbose    bool
}

// newRootCmd builds the todo command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Keep a list of notes with due dates",
		Long: `todo stores notes with a title, an optional body and a due date.
Notes are listed newest due date first and can be completed, edited or removed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to a config file (yaml, json or toml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newDoneCmd(opts),
		newEditCmd(opts),
		newRmCmd(opts),
		newShowCmd(opts),
	)
	return cmd
}
