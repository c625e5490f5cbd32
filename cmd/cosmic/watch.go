package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/Mario960060/cosmichub/internal/events"
	"github.com/Mario960060/cosmichub/internal/model"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the red-flag feed for changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		if user == "" {
			user = actor
		}
		interval, _ := cmd.Flags().GetDuration("interval")
		once, _ := cmd.Flags().GetBool("once")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		seen := make(map[string]time.Time)

		if err := queryAndPrint(ctx, user, seen); err != nil {
			return err
		}
		if once {
			return nil
		}

		natsURL := os.Getenv("COSMICHUB_NATS_URL")
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL != "" {
			return watchNATS(ctx, natsURL, user, seen)
		}
		return watchPoll(ctx, interval, user, seen)
	},
}

// watchNATS subscribes to hub events and re-queries on changes with debounce.
func watchNATS(ctx context.Context, natsURL, user string, seen map[string]time.Time) error {
	// reconnectCh receives a signal when the NATS client reconnects after
	// a disconnect, so we can immediately re-query for missed events.
	reconnectCh := make(chan struct{}, 1)

	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
			select {
			case reconnectCh <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("cosmichub.>")
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	debounce := time.NewTimer(0)
	debounce.Stop()
	// Drain the timer channel in case it fired between NewTimer and Stop.
	select {
	case <-debounce.C:
	default:
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			debounce.Reset(200 * time.Millisecond)
		case <-reconnectCh:
			debounce.Reset(0) // immediate re-query
		case <-debounce.C:
			if err := queryAndPrint(ctx, user, seen); err != nil {
				return err
			}
		}
	}
}

// watchPoll polls for changes at the given interval.
func watchPoll(ctx context.Context, interval time.Duration, user string, seen map[string]time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		if err := queryAndPrint(ctx, user, seen); err != nil {
			return err
		}
	}
}

// queryAndPrint fetches the feed, diffs against the seen map, and prints any
// new or changed flags.
func queryAndPrint(ctx context.Context, user string, seen map[string]time.Time) error {
	flags, err := hub.GetRedFlags(ctx, user)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		fatalf("%v", err)
	}

	changed := diffFlags(flags, seen)
	if len(changed) > 0 {
		if jsonOutput {
			printJSON(changed)
		} else {
			printFlagsTable(changed)
		}
	}
	return nil
}

// diffFlags compares flags against the seen map and returns those that are new
// or have a different created_at timestamp. It updates seen in place.
func diffFlags(flags []*model.RedFlag, seen map[string]time.Time) []*model.RedFlag {
	var changed []*model.RedFlag
	for _, f := range flags {
		prev, ok := seen[f.ID]
		if !ok || !f.CreatedAt.Equal(prev) {
			changed = append(changed, f)
		}
		seen[f.ID] = f.CreatedAt
	}
	return changed
}

func init() {
	watchCmd.Flags().StringP("user", "u", "", "user to build the feed for (defaults to actor)")
	watchCmd.Flags().Duration("interval", 5*time.Second, "polling interval")
	watchCmd.Flags().Bool("once", false, "exit after first query")
}
