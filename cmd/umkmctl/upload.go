package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/umkmctl/internal/ops"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [<file>]",
	Short: "Replace the whole database with a JSON file",
	Long: `Upload reads a JSON file (default umkm.json) and PUTs it at the
database root, replacing everything. It asks for confirmation unless --yes
is given, and takes a backup first when a backup destination is configured.`,
	GroupID: "data",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ops.DefaultUploadFile
		if len(args) == 1 {
			path = args[0]
		}
		data, err := ops.ReadJSONFile(path)
		if err != nil {
			return err
		}

		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		out := cmd.OutOrStdout()
		banner(out, "Uploading database")
		fmt.Fprintf(out, "read data from '%s'\n", path)
		return r.Upload(cmd.Context(), data, path)
	},
}
