package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var remoteCmd = &cobra.Command{
	Use:     "remote",
	Short:   "Manage named databases",
	GroupID: "system",
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add or update a named database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, url := args[0], args[1]
		secret, _ := cmd.Flags().GetString("secret")
		natsURL, _ := cmd.Flags().GetString("nats")

		if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
			return fmt.Errorf("database URL %q must start with https://", url)
		}

		rc, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		rc.Remotes[name] = Remote{URL: strings.TrimRight(url, "/"), Secret: secret, NATSURL: natsURL}
		if err := saveRemotesConfig(rc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "remote %q added (%s)\n", name, url)
		return nil
	},
}

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a named database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		rc, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		if _, ok := rc.Remotes[name]; !ok {
			return fmt.Errorf("remote %q not found", name)
		}
		delete(rc.Remotes, name)
		if rc.Active == name {
			rc.Active = ""
		}
		if err := saveRemotesConfig(rc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "remote %q removed\n", name)
		return nil
	},
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List named databases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		if len(rc.Remotes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no remotes configured")
			return nil
		}
		names := make([]string, 0, len(rc.Remotes))
		for name := range rc.Remotes {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tURL\tSECRET")
		for _, name := range names {
			r := rc.Remotes[name]
			marker := "  "
			if name == rc.Active {
				marker = "* "
			}
			fmt.Fprintf(w, "%s%s\t%s\t%s\n", marker, name, r.URL, truncateSecret(r.Secret))
		}
		return w.Flush()
	},
}

var remoteUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		rc, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		if _, ok := rc.Remotes[name]; !ok {
			return fmt.Errorf("remote %q not found", name)
		}
		rc.Active = name
		if err := saveRemotesConfig(rc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "active remote set to %q\n", name)
		return nil
	},
}

var remoteShowCmd = &cobra.Command{
	Use:   "show [<name>]",
	Short: "Show a named database (defaults to active)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := loadRemotesConfig()
		if err != nil {
			return err
		}

		name := rc.Active
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" {
			return fmt.Errorf("no active remote; specify a name or run 'umkmctl remote use <name>'")
		}
		r, ok := rc.Remotes[name]
		if !ok {
			return fmt.Errorf("remote %q not found", name)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		active := ""
		if name == rc.Active {
			active = " (active)"
		}
		fmt.Fprintf(w, "name:\t%s%s\n", name, active)
		fmt.Fprintf(w, "url:\t%s\n", r.URL)
		if r.Secret != "" {
			fmt.Fprintf(w, "secret:\t%s\n", maskSecret(r.Secret))
		}
		if r.NATSURL != "" {
			fmt.Fprintf(w, "nats_url:\t%s\n", r.NATSURL)
		}
		return w.Flush()
	},
}

// secretHint is how many leading characters of a long secret are shown.
// Secrets shorter than minHintLen are never partially shown.
const (
	secretHint = 4
	minHintLen = 16
)

func truncateSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) < minHintLen:
		return "********"
	}
	return s[:secretHint] + "..."
}

func maskSecret(s string) string {
	if len(s) < minHintLen {
		return "********"
	}
	return s[:secretHint] + strings.Repeat("*", len(s)-secretHint)
}

func init() {
	remoteAddCmd.Flags().String("secret", "", "database secret or ID token")
	remoteAddCmd.Flags().String("nats", "", "NATS URL for mutation events")

	remoteCmd.AddCommand(remoteAddCmd)
	remoteCmd.AddCommand(remoteRemoveCmd)
	remoteCmd.AddCommand(remoteListCmd)
	remoteCmd.AddCommand(remoteUseCmd)
	remoteCmd.AddCommand(remoteShowCmd)
}
