package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded generations",
		Example: `
  # Record a run, then list it
  ghosttext 3 "the" 80 fixed book.txt --record
  ghosttext history --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("invalid limit %d: must be positive", limit)
			}
			runs, closeFn, err := openRunStore(g.dbPath)
			if err != nil {
				return fmt.Errorf("failed to open run journal: %w", err)
			}
			defer closeFn()

			recent, err := runs.RecentRuns(limit)
			if err != nil {
				return fmt.Errorf("failed to read runs: %w", err)
			}
			if len(recent) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tWINDOW\tSEED\tSTOP\tCORPUS\tOUTPUT")
			for _, r := range recent {
				seed := "random"
				if r.Seed != nil {
					seed = strconv.FormatInt(*r.Seed, 10)
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.WindowLength, seed,
					r.StopReason, r.CorpusKey, preview(r.Output, 60))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")

	return cmd
}

func preview(s string, n int) string {
	s = strings.NewReplacer("\n", "⏎", "\t", " ").Replace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
