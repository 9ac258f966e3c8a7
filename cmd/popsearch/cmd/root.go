package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"pop-search/cmd/popsearch/cmd/analyze"
	"pop-search/cmd/popsearch/cmd/export"
	"pop-search/cmd/popsearch/cmd/search"
	"pop-search/cmd/popsearch/cmd/serve"
	"pop-search/cmd/popsearch/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "popsearch",
	Short: "Describe short videos with a multimodal model and search them by meaning",
	Long: `Describe short videos with a multimodal model and search them by meaning.
- analyze downloads a video and extracts structured metadata
- serve exposes analysis, indexing and semantic search over HTTP
- search and export query the stored catalog from the terminal`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(analyze.Cmd)
	rootCmd.AddCommand(search.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "verbose output")
}
