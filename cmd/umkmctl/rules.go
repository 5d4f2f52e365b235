package main

import (
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/umkmctl/internal/ops"
)

var rulesCmd = &cobra.Command{
	Use:     "rules",
	Short:   "Read or replace the database security rules",
	GroupID: "data",
}

var rulesPushCmd = &cobra.Command{
	Use:   "push [<file>]",
	Short: "Replace the security rules with a rules file",
	Long: `Push replaces the security rules with the contents of a rules file
(default database.rules.json). It needs UMKM_AUTH_SECRET,
GOOGLE_APPLICATION_CREDENTIALS or Application Default Credentials
(gcloud auth application-default login).`,
	Annotations: map[string]string{annotationAuth: "required"},
	Args:        cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ops.DefaultRulesFile
		if len(args) == 1 {
			path = args[0]
		}
		rules, err := ops.ReadJSONFile(path)
		if err != nil {
			return err
		}
		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		return r.PushRules(cmd.Context(), rules)
	},
}

var rulesPullCmd = &cobra.Command{
	Use:         "pull",
	Short:       "Print the current security rules",
	Annotations: map[string]string{annotationAuth: "required"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, done, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer done()

		rules, err := r.PullRules(cmd.Context())
		if err != nil {
			return err
		}
		printRaw(cmd.OutOrStdout(), rules)
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesPushCmd)
	rulesCmd.AddCommand(rulesPullCmd)
}
