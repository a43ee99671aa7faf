package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Every call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "krait",
		Short: "krait runs a scene tree at a fixed frame rate",
		Long: `krait drives a tree of nodes through a fixed-cadence loop, dispatching
ready, key input and update events through each node's layer chain.

Use "krait [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file (YAML)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}
