package cmd

import (
	"github.com/spf13/cobra"
)

// newServeCmd creates the serve command, an explicit alias for the
// default interactive widget.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the interactive search widget",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context())
		},
	}
}
