package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alfredjeanlab/umkmctl/internal/events"
	"github.com/alfredjeanlab/umkmctl/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow database mutations published by other umkmctl runs",
	Long: `Watch subscribes to the NATS event stream (UMKM_NATS_URL or the active
remote) and prints every mutation and backup as it happens.`,
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		if cfg.NATSURL == "" {
			return fmt.Errorf("no NATS URL: set UMKM_NATS_URL or add --nats to the active remote")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sub, err := events.NewNATSSubscriber(cfg.NATSURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				logger.Warn("nats disconnected", zap.Error(err))
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				logger.Info("nats reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		logger.Info("watching", zap.String("topic", topic))
		return followEvents(ctx, ch, cmd.OutOrStdout())
	},
}

// followEvents prints messages from ch until ctx is done or ch closes.
func followEvents(ctx context.Context, ch <-chan events.Message, w io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			printEvent(w, msg)
		}
	}
}

func printEvent(w io.Writer, msg events.Message) {
	if jsonOutput {
		fmt.Fprintln(w, string(msg.Data))
		return
	}
	if msg.Topic == events.TopicBackupWritten {
		var b events.BackupWritten
		if err := json.Unmarshal(msg.Data, &b); err != nil {
			fmt.Fprintf(w, "%s %s\n", msg.Topic, msg.Data)
			return
		}
		fmt.Fprintf(w, "%s %s %s backup %s (%d bytes, %d destinations)\n",
			ui.RenderMuted(b.At.Local().Format("15:04:05")), ui.RenderAccent(b.OpID), ui.RenderOK("BACKUP"),
			b.Name, b.Bytes, b.Destinations)
		return
	}

	var m events.Mutation
	if err := json.Unmarshal(msg.Data, &m); err != nil {
		fmt.Fprintf(w, "%s %s\n", msg.Topic, msg.Data)
		return
	}
	path := m.Path
	if path == "" {
		path = "/"
	}
	line := fmt.Sprintf("%s %s %-6s %s %s %s",
		ui.RenderMuted(m.At.Local().Format("15:04:05")), ui.RenderAccent(m.OpID), m.Method, path,
		ui.RenderStatus(m.Status), ui.RenderMuted(m.Command))
	if m.Error != "" {
		line += " " + ui.RenderFail(m.Error)
	}
	fmt.Fprintln(w, line)
}

func init() {
	watchCmd.Flags().String("topic", events.TopicAll, "NATS subject to follow")
}
