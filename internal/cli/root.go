// Package cli defines the cobra command tree for reviewd.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reviewd",
		Short:         "Serve and score location reviews",
		Long:          "An HTTP service that stores location-tagged reviews and returns them ranked by sentiment.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newScoreCmd(),
	)

	return root
}
