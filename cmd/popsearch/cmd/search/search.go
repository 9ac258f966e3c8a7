package search

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pop-search/cmd/popsearch/cmd/bootstrap"
	"pop-search/internal/app/model"
)

var limit int
var threshold float64

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "l", model.DefaultSearchLimit, "maximum number of results")
	Cmd.Flags().Float64VarP(&threshold, "threshold", "t", model.DefaultSearchThreshold, "minimum cosine similarity")
}

// Cmd represents the search command
var Cmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored videos by meaning",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if limit < 1 || limit > 50 {
			return fmt.Errorf("limit must be between 1 and 50")
		}
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("threshold must be between 0 and 1")
		}

		c, cleanup, err := bootstrap.Container(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		q := model.NewSearchQuery(args[0])
		q.Limit = limit
		q.Threshold = threshold

		results, err := c.Search.Search(cmd.Context(), q)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no matching videos")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SIMILARITY\tTITLE\tURL")
		for _, r := range results {
			fmt.Fprintf(w, "%.4f\t%s\t%s\n", r.Similarity, r.Title, r.SourceURL)
		}
		return w.Flush()
	},
}
