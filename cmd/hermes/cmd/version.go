package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aryan-pahwani/hermes/pkg/version"
)

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.String())
		},
	}
}
