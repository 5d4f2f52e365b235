package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/umkmctl/internal/fixtures"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore deleted businesses with a single root PATCH",
	Long: `Restore sends the bundled restore dataset (or --file) as one multi-path
PATCH at the database root, keyed by "<node>/<id>". Only the businesses in
the dataset are replaced; other businesses and every other node are left
as they are.`,
	GroupID: "data",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		dataset, _ := cmd.Flags().GetString("dataset")

		ds, err := fixtures.Resolve(dataset, file)
		if err != nil {
			return err
		}
		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		out := cmd.OutOrStdout()
		if !jsonOutput {
			banner(out, "Restoring data")
		}
		if err := r.Restore(cmd.Context(), ds); err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, map[string]any{"op_id": r.OpID, "restored": ds.Len()})
		}
		fmt.Fprintln(out, "\nrestore finished; check the database console to verify")
		return nil
	},
}

var reseedCmd = &cobra.Command{
	Use:   "reseed",
	Short: "Delete businesses and write them again, one PUT per node",
	Long: `Reseed first deletes <node>/<id> for every id and every business node
(umkm, umkm_menu, umkm_services, reviews), then writes each record of the
dataset with its own PUT. A failed delete or write is reported and the run
continues; the command exits non-zero if any write failed.`,
	GroupID: "data",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		dataset, _ := cmd.Flags().GetString("dataset")
		ids, _ := cmd.Flags().GetStringSlice("ids")

		ds, err := fixtures.Resolve(dataset, file)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			if file == "" && dataset == fixtures.Reseed {
				ids = fixtures.ReseedIDs
			} else {
				ids = ds.IDs()
			}
		}

		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		out := cmd.OutOrStdout()
		if jsonOutput {
			r.Out = nil
		} else {
			banner(out, "Reseeding "+strings.Join(ids, ", "))
		}
		report, runErr := r.Reseed(cmd.Context(), ids, ds)
		if jsonOutput && report != nil {
			if err := printJSON(out, report); err != nil {
				return err
			}
		}
		if runErr != nil {
			return runErr
		}
		if !jsonOutput {
			fmt.Fprintln(out, "\nreseed finished; check the database console to verify")
		}
		return nil
	},
}

func init() {
	restoreCmd.Flags().StringP("file", "f", "", "dataset file ({node: {id: value}}) instead of the bundled one")
	restoreCmd.Flags().String("dataset", fixtures.Restore, "bundled dataset name")
	reseedCmd.Flags().StringP("file", "f", "", "dataset file ({node: {id: value}}) instead of the bundled one")
	reseedCmd.Flags().String("dataset", fixtures.Reseed, "bundled dataset name")
	reseedCmd.Flags().StringSlice("ids", nil, "ids to delete first (default: the dataset's ids)")
}
