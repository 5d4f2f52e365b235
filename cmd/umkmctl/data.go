package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/umkmctl/internal/ops"
)

var getCmd = &cobra.Command{
	Use:     "get [<path>]",
	Short:   "Print the value at a path (root when omitted)",
	GroupID: "data",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		raw, err := r.Get(cmd.Context(), pathArg(args))
		if err != nil {
			return err
		}
		printRaw(cmd.OutOrStdout(), raw)
		return nil
	},
}

var putCmd = &cobra.Command{
	Use:   "put <path> [<json>|-]",
	Short: "Replace the value at a path",
	Long: `Replace the value at a path with a JSON document given inline, read
from --file, or read from stdin with "-". Use upload to replace the root.`,
	GroupID: "data",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readBody(cmd, args[1:])
		if err != nil {
			return err
		}
		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		resp, err := r.Put(cmd.Context(), args[0], body)
		if err != nil {
			return err
		}
		printRaw(cmd.OutOrStdout(), resp)
		return nil
	},
}

var patchCmd = &cobra.Command{
	Use:     "patch <path> [<json>|-]",
	Short:   "Merge the children of a JSON object into a path",
	GroupID: "data",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readBody(cmd, args[1:])
		if err != nil {
			return err
		}
		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		resp, err := r.Patch(cmd.Context(), args[0], body)
		if err != nil {
			return err
		}
		printRaw(cmd.OutOrStdout(), resp)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <path>",
	Short:   "Delete the value at a path",
	GroupID: "data",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		if err := r.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// readBody returns the request body from --file, the inline argument, or
// stdin when the argument is "-".
func readBody(cmd *cobra.Command, args []string) (json.RawMessage, error) {
	file, _ := cmd.Flags().GetString("file")
	switch {
	case file != "" && len(args) > 0:
		return nil, fmt.Errorf("give the body inline or with --file, not both")
	case file != "":
		return ops.ReadJSONFile(file)
	case len(args) == 0:
		return nil, fmt.Errorf("missing JSON body (inline, --file, or - for stdin)")
	}

	var data []byte
	if args[0] == "-" {
		var err error
		if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		data = []byte(args[0])
	}
	if !json.Valid(data) {
		return nil, ops.ErrInvalidJSON
	}
	return json.RawMessage(data), nil
}

func init() {
	putCmd.Flags().StringP("file", "f", "", "read the JSON body from a file")
	patchCmd.Flags().StringP("file", "f", "", "read the JSON body from a file")
}
