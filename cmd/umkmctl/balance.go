package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/umkmctl/internal/snapshot"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [<input> [<output>]]",
	Short: "Add a zero balance to every user in an exported snapshot",
	Long: `Balance reads an exported database snapshot, sets "balance": 0.0 on
every record under users (or user) that has none, and writes the result
indented with four spaces. Key order and all other values are preserved.`,
	GroupID: "files",
	Args:    cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := snapshot.DefaultExportFile, snapshot.DefaultBalanceFile
		if len(args) > 0 {
			in = args[0]
		}
		if len(args) > 1 {
			out = args[1]
		}

		res, err := snapshot.AddBalanceFile(in, out)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"input": in, "output": out, "node": res.Node, "added": res.Added,
			})
		}
		w := cmd.OutOrStdout()
		if res.Node == "" {
			fmt.Fprintf(w, "warning: no 'users' or 'user' node found in %s; no changes made\n", in)
		} else {
			fmt.Fprintf(w, "added balance to %d records under '%s'\n", len(res.Added), res.Node)
		}
		fmt.Fprintf(w, "wrote %s\n", out)
		return nil
	},
}
