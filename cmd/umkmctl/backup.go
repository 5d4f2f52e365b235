package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/umkmctl/internal/backup"
	"github.com/alfredjeanlab/umkmctl/internal/idgen"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export the whole database to the backup destinations",
	Long: `Backup exports the database root and writes it to every configured
destination (UMKM_BACKUP_DIR, UMKM_BACKUP_S3_BUCKET, UMKM_BACKUP_GIT_REPO).
With --every it keeps running and writes a new snapshot whenever the
database changed since the previous one.`,
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		every, _ := cmd.Flags().GetDuration("every")
		if !cfg.BackupEnabled() {
			return fmt.Errorf("no backup destination: set UMKM_BACKUP_DIR, UMKM_BACKUP_S3_BUCKET or UMKM_BACKUP_GIT_REPO")
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		client, err := newClient(ctx, false)
		if err != nil {
			return err
		}
		opID, err := idgen.NewOpID()
		if err != nil {
			return err
		}
		pub := newPublisher()
		defer pub.Close()

		exporter, err := newExporter(ctx, client, pub, opID)
		if err != nil {
			return err
		}

		if every <= 0 {
			snap, err := exporter.Run(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"op_id": opID, "name": snap.Name, "bytes": len(snap.Data), "fingerprint": snap.Fingerprint,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes) to %d destinations\n", snap.Name, len(snap.Data), len(exporter.Destinations))
			return nil
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		sched := backup.NewScheduler(exporter, every, logger)
		sched.Start(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "backing up every %s; press Ctrl-C to stop\n", every)
		<-ctx.Done()
		sched.Stop()
		return nil
	},
}

func init() {
	backupCmd.Flags().Duration("every", 0, "keep running and back up at this interval (e.g. 1h)")
}
