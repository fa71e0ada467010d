package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openfga/linkedstack/internal/build"
)

// NewVersionCommand returns the command to get linkedstack version
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Return the linkedstack version",
		Long:  "Return the linkedstack version.",
		RunE:  version,
		Args:  cobra.NoArgs,
	}

	return cmd
}

// print out the built version
func version(cmd *cobra.Command, _ []string) error {
	cmd.Printf("linkedstack Version %s Date %s commit id %s\n", build.Version, build.Date, build.Commit)
	return nil
}
