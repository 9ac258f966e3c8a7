package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"pop-search/internal/config"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of popsearch",
	Long:  `All software has versions. This is popsearch's.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Version)
		return nil
	},
}
