package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/umkmctl/internal/journal"
	"github.com/alfredjeanlab/umkmctl/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled mutations, newest first",
	Long: `History lists the mutations recorded in the operations journal
(UMKM_JOURNAL_URL, a PostgreSQL database).`,
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opID, _ := cmd.Flags().GetString("op")
		limit, _ := cmd.Flags().GetInt("limit")
		if cfg.JournalURL == "" {
			return fmt.Errorf("no journal configured: set UMKM_JOURNAL_URL")
		}

		j, err := journal.Open(cfg.JournalURL)
		if err != nil {
			return err
		}
		defer j.Close()

		entries, err := j.List(cmd.Context(), journal.Filter{OpID: opID, Limit: limit})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no entries")
			return nil
		}
		printHistory(cmd, entries)
		return nil
	},
}

func printHistory(cmd *cobra.Command, entries []*journal.Entry) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tOP\tCOMMAND\tMETHOD\tPATH\tSTATUS\tACTOR")
	for _, e := range entries {
		path := e.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.OpID, e.Command, e.Method, path,
			ui.RenderStatus(e.Status), e.Actor)
	}
	_ = w.Flush()
}

func init() {
	historyCmd.Flags().String("op", "", "only show entries of one operation id")
	historyCmd.Flags().Int("limit", journal.DefaultLimit, "maximum number of entries")
}
