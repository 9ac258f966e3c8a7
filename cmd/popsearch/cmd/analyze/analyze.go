package analyze

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pop-search/cmd/popsearch/cmd/bootstrap"
	"pop-search/internal/app/progress"
)

var index bool
var noProgress bool

func init() {
	Cmd.Flags().BoolVarP(&index, "index", "i", false, "store the extracted metadata for search")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide the processing progress bar")
}

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Extract structured metadata from a video",
	Long: `Extract structured metadata from a video.

- Downloads the video, uploads it to Gemini and waits until it is processed
- Prints the extracted metadata as JSON
- With --index the metadata is also embedded and stored`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]

		c, cleanup, err := bootstrap.Container(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		bar := progress.NewPollBar(progress.Config{
			Enabled: !noProgress,
			Writer:  cmd.ErrOrStderr(),
		}, c.Poller.MaxPolls(), "Processing video")

		analyzer := c.Analyzer.WithSubmitter(c.Poller.WithObserver(bar))
		res := analyzer.Analyze(cmd.Context(), url)
		bar.Finish()

		if !res.OK() {
			return fmt.Errorf("analysis %s: %w", res.Outcome, res.Err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Metadata); err != nil {
			return err
		}

		if index {
			id, err := c.Indexer.Index(cmd.Context(), res.Metadata)
			if err != nil {
				return fmt.Errorf("failed to index video: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "indexed video %s\n", id)
		}
		return nil
	},
}
