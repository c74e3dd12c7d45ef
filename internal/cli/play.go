// internal/cli/play.go
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smurfs/mathic-client/internal/auth"
	"github.com/smurfs/mathic-client/internal/journal"
	"github.com/smurfs/mathic-client/internal/models"
	"github.com/smurfs/mathic-client/internal/push"
	"github.com/smurfs/mathic-client/internal/session"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <session-id>",
		Short: "Play a session interactively",
		Long: `Join the live view of a session and play it from the terminal.

Commands inside the session:
  s <i>      select your card at index i
  t <j>      target the opponent's card at index j with the selected card
  c          clear the current selection
  split      rebalance your two cards (legal when they differ by more than 1)
  surrender  concede the session
  b          print the board
  q          leave the session view`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), args[0])
		},
	}
}

// localIdentity resolves who we are, preferring the auth service and falling
// back to the token claims when the service is unreachable.
func localIdentity(ctx context.Context) (*models.Identity, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: no bearer token configured", models.ErrUnauthorized)
	}
	ident, err := auth.New(cfg.ServerURL).Me(ctx, cfg.Token)
	if err == nil {
		return ident, nil
	}
	if errors.Is(err, models.ErrTransport) {
		logger.WithError(err).Debug("identity fetch unreachable, decoding token claims")
		return auth.IdentityFromToken(cfg.Token)
	}
	return nil, err
}

func runPlay(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	local, err := localIdentity(ctx)
	if err != nil {
		return err
	}

	if cfg.RedisAddr != "" {
		if err := journal.Connect(cfg.RedisAddr, cfg.RedisDB); err != nil {
			logger.WithError(err).Warn("session journal disabled")
		}
	}

	store := session.NewStore(local.ID, logger)
	store.OnApply = func(s *models.Session) {
		if !journal.Enabled() {
			return
		}
		err := journal.Publish(ctx, cfg.QueueName, journal.Record{
			SessionID: s.GameID,
			ActorID:   local.ID,
			Kind:      "snapshot_applied",
			Payload:   map[string]interface{}{"status": string(s.Status)},
		})
		if err != nil {
			logger.WithError(err).Warn("journal publish failed")
		}
	}
	machine := session.NewMachine(store, apiClient, *local, logger)
	machine.OnSubmit = func(intent models.Intent) {
		if !journal.Enabled() {
			return
		}
		err := journal.Publish(ctx, cfg.QueueName, journal.Record{
			SessionID: intent.SessionID,
			ActorID:   local.ID,
			Kind:      "intent_" + string(intent.Kind),
			Payload:   map[string]interface{}{"source": intent.Source, "target": intent.Target},
		})
		if err != nil {
			logger.WithError(err).Warn("journal publish failed")
		}
	}

	// Session-open fetch. A transport failure here keeps the view loading
	// with a visible error; the first snapshot may still arrive via push.
	if snap, err := apiClient.Fetch(ctx, sessionID); err != nil {
		fmt.Printf("could not load session yet: %v\n", err)
	} else if err := machine.HandleSnapshot(snap); err != nil {
		return err
	}

	sub, err := push.Subscribe(ctx, cfg.WSURL, cfg.Token, sessionID, logger)
	if err != nil {
		return err
	}
	defer func() {
		sub.Close()
		store.Close()
	}()

	go consumeEvents(ctx, sub, machine, store, sessionID)

	fmt.Print(renderSession(store.Snapshot(), local.ID))
	return inputLoop(ctx, machine, store, local.ID)
}

// consumeEvents applies push deliveries until the channel closes. A started
// lifecycle event re-opens the active view with a fresh fetch; progress
// events carry full snapshots and are applied as-is, last one wins.
func consumeEvents(ctx context.Context, sub *push.Subscriber, machine *session.Machine, store *session.Store, sessionID string) {
	for ev := range sub.Events() {
		switch ev.Type {
		case push.EventSnapshot:
			if err := machine.HandleSnapshot(ev.Session); err != nil {
				logger.WithError(err).Warn("rejected pushed snapshot")
				continue
			}
		case push.EventStarted:
			snap, err := apiClient.Fetch(ctx, sessionID)
			if err != nil {
				logger.WithError(err).Warn("session started but fetch failed")
				continue
			}
			if err := machine.HandleSnapshot(snap); err != nil {
				logger.WithError(err).Warn("rejected snapshot after start")
				continue
			}
		}

		fmt.Print("\n" + renderSession(store.Snapshot(), store.LocalID()))
		if store.IsFinished() {
			fmt.Print(renderOutcome(store.Snapshot(), store.LocalID(), store.Surrendered()))
		}
	}
}

func inputLoop(ctx context.Context, machine *session.Machine, store *session.Store, localID int64) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "q", "quit":
			return nil
		case "b", "board":
			fmt.Print(renderSession(store.Snapshot(), localID))
		case "s", "select":
			err = withIndex(fields, machine.SelectCard)
		case "t", "target":
			err = withIndex(fields, func(j int) error {
				return machine.TargetCard(ctx, j)
			})
		case "c", "clear":
			machine.ClearSelection()
		case "split":
			err = machine.Split(ctx)
		case "surrender":
			err = machine.Surrender(ctx)
			if err == nil {
				fmt.Print(renderOutcome(store.Snapshot(), localID, store.Surrendered()))
			}
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}

		if err != nil {
			// Action failures re-enable input without mutating card state.
			fmt.Printf("rejected: %v\n", err)
		}
	}
}

func withIndex(fields []string, fn func(int) error) error {
	if len(fields) < 2 {
		return fmt.Errorf("%w: missing card index", models.ErrIllegalAction)
	}
	idx, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("%w: card index must be a number", models.ErrIllegalAction)
	}
	return fn(idx)
}
