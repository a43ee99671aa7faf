package main

import (
	"fmt"

	"github.com/phanxgames/krait"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of krait",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "krait version %s\n", krait.Version)
		},
	}
}
