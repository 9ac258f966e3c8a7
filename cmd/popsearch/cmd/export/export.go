package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"pop-search/cmd/popsearch/cmd/bootstrap"
	"pop-search/internal/app/export"
)

var outputFilePath string
var limit int

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().IntVarP(&limit, "limit", "l", 10000, "maximum number of videos to export")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored videos to excel",
	Long: `Export the stored videos to excel

- Newest videos first, one row per video`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := bootstrap.Store(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		videos, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if err := export.ToExcelFile(videos, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, %d videos, exported file path: %v\n", len(videos), outputFilePath)
		return nil
	},
}
