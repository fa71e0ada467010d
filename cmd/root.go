// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand enables all children commands to read flags from CLI flags, environment variables prefixed with LINKEDSTACK, or config.yaml (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LINKEDSTACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/linkedstack", "$HOME/.linkedstack", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	return &cobra.Command{
		Use:   "linkedstack",
		Short: "Exercise singly-linked LIFO stacks and their iterative teardown",
		Long: `Exercise singly-linked LIFO stacks and their iterative teardown.

linkedstack pushes long chains of values onto independent stacks, pops them back
checking LIFO order, and releases what is left one node at a time.`,
		SilenceUsage: true,
	}
}
