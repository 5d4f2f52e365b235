package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alfredjeanlab/umkmctl/internal/snapshot"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printRaw pretty-prints a database response.
func printRaw(w io.Writer, raw json.RawMessage) {
	fmt.Fprint(w, string(snapshot.Pretty(raw)))
}

func banner(w io.Writer, title string) {
	line := "======================================================"
	fmt.Fprintf(w, "%s\n  %s\n%s\n\n", line, title, line)
}
