package main

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/umkmctl/internal/ui"
)

// Patterns used to colorize cobra's help output.
var (
	// Unindented line ending with ":" ("Data:", "Flags:"). "Usage:" is
	// matched too and colored like the rest.
	reGroupHeader = regexp.MustCompile(`(?m)^([A-Z][^\n]*:)\s*$`)

	// Two-space indent, a command name, then two or more spaces.
	reCommand = regexp.MustCompile(`(?m)^(  )(\S+)(  )`)

	// Flag type annotations such as "--every duration".
	reFlagType = regexp.MustCompile(`(--?\S+\s+)(string|int|float64|duration|strings)\b`)

	reDefault = regexp.MustCompile(`\(default [^)]*\)`)
)

func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if !ui.ShouldUseColor(os.Stdout) {
			cmd.SetOut(cmd.OutOrStdout())
			_ = cmd.Usage()
			return
		}
		orig := cmd.OutOrStdout()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		_ = cmd.Usage()
		cmd.SetOut(orig)
		fmt.Fprint(orig, colorizeHelpOutput(buf.String()))
	}
}

func colorizeHelpOutput(s string) string {
	s = reGroupHeader.ReplaceAllStringFunc(s, func(m string) string {
		return ui.RenderAccent(strings.TrimSpace(m))
	})
	s = reCommand.ReplaceAllStringFunc(s, func(m string) string {
		if p := reCommand.FindStringSubmatch(m); len(p) == 4 {
			return p[1] + ui.RenderOK(p[2]) + p[3]
		}
		return m
	})
	s = reFlagType.ReplaceAllStringFunc(s, func(m string) string {
		if p := reFlagType.FindStringSubmatch(m); len(p) == 3 {
			return p[1] + ui.RenderMuted(p[2])
		}
		return m
	})
	return reDefault.ReplaceAllStringFunc(s, ui.RenderMuted)
}
