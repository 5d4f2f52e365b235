package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alfredjeanlab/umkmctl/internal/config"
	"github.com/alfredjeanlab/umkmctl/internal/logging"
	"github.com/alfredjeanlab/umkmctl/internal/ui"
)

var (
	databaseURL string
	jsonOutput  bool
	assumeYes   bool
	verbose     bool
	actor       string

	cfg    *config.Config
	logger *zap.Logger
)

func defaultActor() string {
	out, err := exec.Command("git", "config", "user.name").Output()
	if err == nil {
		name := strings.TrimSpace(string(out))
		if name != "" {
			return name
		}
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}

var rootCmd = &cobra.Command{
	Use:           "umkmctl <command>",
	Short:         "Maintenance tool for the UMKM Realtime Database",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		applyRemoteDefaults(c)
		if databaseURL != "" {
			c.DatabaseURL = databaseURL
		}
		cfg = c

		logger, err = logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		ui.SetColor(ui.ShouldUseColor(os.Stdout))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// applyRemoteDefaults fills settings the environment left empty from the
// active remote.
func applyRemoteDefaults(c *config.Config) {
	if c.DatabaseURL == "" {
		c.DatabaseURL = activeRemoteURL()
	}
	if c.AuthSecret == "" {
		c.AuthSecret = activeRemoteSecret()
	}
	if c.NATSURL == "" {
		c.NATSURL = activeRemoteNATSURL()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "url", "", "database URL (overrides UMKM_DATABASE_URL and the active remote)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to confirmation prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", defaultActor(), "actor name recorded in the journal")

	rootCmd.AddGroup(
		&cobra.Group{ID: "data", Title: "Data:"},
		&cobra.Group{ID: "files", Title: "Files:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Data
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(patchCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(reseedCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(reviewsCmd)

	// Files
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(convertCmd)

	// System
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "cancelled by user")
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
