// internal/cli/watch.go
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smurfs/mathic-client/internal/auth"
	"github.com/smurfs/mathic-client/internal/push"
	"github.com/smurfs/mathic-client/internal/session"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <session-id>",
		Short: "Stream a session's snapshots without playing",
		Long: `Follow a session read-only: the waiting-room view before it starts,
then every pushed snapshot until it finishes. Press Ctrl+C to leave.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), args[0])
		},
	}
}

func runWatch(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Perspective is cosmetic here; an unknown viewer just sees player1's
	// hand at the bottom.
	var localID int64
	if cfg.Token != "" {
		if ident, err := auth.IdentityFromToken(cfg.Token); err == nil {
			localID = ident.ID
		}
	}

	store := session.NewStore(localID, logger)
	defer store.Close()

	if snap, err := apiClient.Fetch(ctx, sessionID); err != nil {
		fmt.Printf("could not load session yet: %v\n", err)
	} else if err := store.ApplySnapshot(snap); err != nil {
		return err
	}
	fmt.Print(renderSession(store.Snapshot(), localID))

	sub, err := push.Subscribe(ctx, cfg.WSURL, cfg.Token, sessionID, logger)
	if err != nil {
		return err
	}
	defer sub.Close()

	for ev := range sub.Events() {
		switch ev.Type {
		case push.EventStarted:
			fmt.Println("session started")
			snap, err := apiClient.Fetch(ctx, sessionID)
			if err != nil {
				logger.WithError(err).Warn("session started but fetch failed")
				continue
			}
			if err := store.ApplySnapshot(snap); err != nil {
				logger.WithError(err).Warn("rejected snapshot after start")
				continue
			}
		case push.EventSnapshot:
			if err := store.ApplySnapshot(ev.Session); err != nil {
				logger.WithError(err).Warn("rejected pushed snapshot")
				continue
			}
		}
		fmt.Print("\n" + renderSession(store.Snapshot(), localID))
	}
	return nil
}
