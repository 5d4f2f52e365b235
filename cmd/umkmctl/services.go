package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alfredjeanlab/umkmctl/internal/backup"
	"github.com/alfredjeanlab/umkmctl/internal/events"
	"github.com/alfredjeanlab/umkmctl/internal/idgen"
	"github.com/alfredjeanlab/umkmctl/internal/journal"
	"github.com/alfredjeanlab/umkmctl/internal/ops"
	"github.com/alfredjeanlab/umkmctl/internal/rtdb"
	"github.com/alfredjeanlab/umkmctl/internal/ui"
)

// annotationAuth marks commands that cannot run without credentials. For
// those, newClient falls back to Application Default Credentials.
const annotationAuth = "umkmctl/auth"

// defaultCredentials looks up Application Default Credentials.
var defaultCredentials = func(ctx context.Context) (rtdb.Authorizer, error) {
	auth, err := rtdb.GoogleAuth(ctx, "")
	if err != nil {
		return nil, err
	}
	return auth, nil
}

// newClient builds the database client from cfg. A database secret wins
// over service-account credentials. With useADC set and neither configured,
// Application Default Credentials are tried; when none are found the client
// has no auth and the operation reports ops.ErrNoAuth.
func newClient(ctx context.Context, useADC bool) (*rtdb.Client, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	opts := []rtdb.Option{rtdb.WithTimeout(cfg.HTTPTimeout)}
	switch {
	case cfg.AuthSecret != "":
		opts = append(opts, rtdb.WithAuth(rtdb.SecretAuth(cfg.AuthSecret)))
	case cfg.CredentialsFile != "":
		auth, err := rtdb.GoogleAuth(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("loading credentials: %w", err)
		}
		opts = append(opts, rtdb.WithAuth(auth))
	case useADC:
		auth, err := defaultCredentials(ctx)
		if err != nil {
			logger.Debug("no application default credentials", zap.Error(err))
			break
		}
		opts = append(opts, rtdb.WithAuth(auth))
	}
	return rtdb.NewClient(cfg.DatabaseURL, opts...), nil
}

// newExporter returns an exporter for every configured backup destination.
// The exporter has no destinations when none are configured.
func newExporter(ctx context.Context, src backup.Source, pub events.Publisher, opID string) (*backup.Exporter, error) {
	e := &backup.Exporter{Source: src, Publisher: pub, Logger: logger, OpID: opID}
	if cfg.BackupDir != "" {
		e.Destinations = append(e.Destinations, &backup.FileDestination{Dir: cfg.BackupDir})
	}
	if cfg.BackupS3Bucket != "" {
		s3, err := backup.NewS3Destination(ctx, cfg.BackupS3Bucket, cfg.BackupS3Prefix, cfg.BackupS3Region, cfg.BackupS3Endpoint)
		if err != nil {
			return nil, fmt.Errorf("s3 backup: %w", err)
		}
		e.Destinations = append(e.Destinations, s3)
	}
	if cfg.BackupGitRepo != "" {
		e.Destinations = append(e.Destinations, backup.NewGitDestination(cfg.BackupGitRepo, cfg.BackupGitFile, cfg.BackupGitBranch, cfg.BackupGitPush))
	}
	return e, nil
}

// newPublisher connects to NATS when configured. A connection failure is
// logged and events are dropped rather than failing the command.
func newPublisher() events.Publisher {
	pub, err := events.NewPublisher(cfg.NATSURL)
	if err != nil {
		logger.Warn("events disabled", zap.String("nats_url", cfg.NATSURL), zap.Error(err))
		return &events.NoopPublisher{}
	}
	return pub
}

// newJournal opens the journal when configured. Like newPublisher it falls
// back to discarding entries.
func newJournal() journal.Journal {
	j, err := journal.Open(cfg.JournalURL)
	if err != nil {
		logger.Warn("journal disabled", zap.Error(err))
		return journal.Noop{}
	}
	return j
}

// newRunner wires an ops.Runner for cmd. The returned func releases the
// publisher and journal.
func newRunner(cmd *cobra.Command) (*ops.Runner, func(), error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := newClient(ctx, cmd.Annotations[annotationAuth] == "required")
	if err != nil {
		return nil, nil, err
	}
	opID, err := idgen.NewOpID()
	if err != nil {
		return nil, nil, err
	}

	pub := newPublisher()
	jr := newJournal()
	closeAll := func() {
		_ = pub.Close()
		_ = jr.Close()
	}

	exporter, err := newExporter(ctx, client, pub, opID)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	prompter := ui.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), assumeYes)
	r := &ops.Runner{
		Client:      client,
		Publisher:   pub,
		Journal:     jr,
		Backup:      exporter,
		Logger:      logger.With(zap.String("op_id", opID)),
		Confirm:     prompter.Confirm,
		Out:         cmd.OutOrStdout(),
		OpID:        opID,
		Command:     cmd.CommandPath(),
		Actor:       actor,
		DatabaseURL: client.BaseURL(),
	}
	logger.Debug("runner ready",
		zap.String("op_id", opID),
		zap.String("database", client.BaseURL()),
		zap.Bool("auth", client.HasAuth()),
		zap.Int("backup_destinations", len(exporter.Destinations)),
	)
	return r, closeAll, nil
}
