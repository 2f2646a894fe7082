package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ntu-info/emogo-backend-chaudharyinder/config"
)

func Root(config *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{}
	rootCmd.AddCommand(server(config))
	rootCmd.AddCommand(export(config))
	return rootCmd
}
