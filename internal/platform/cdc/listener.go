package cdc

import (
	"context"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"leavedesk/internal/domain/reconcile"
)

// Event is the notify payload emitted by the leave_requests trigger: the
// operation plus before/after snapshots. Inserts carry no before, deletes no
// after.
type Event struct {
	Op     string              `json:"op"`
	Before *reconcile.Snapshot `json:"before"`
	After  *reconcile.Snapshot `json:"after"`
}

func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

type Handler func(ctx context.Context, before, after *reconcile.Snapshot) error

// Listener holds a dedicated connection on a notify channel and feeds every
// event to the handler. Delivery is at-least-once at best: notifications
// raised while the connection is down are gone, which is why the recovery
// sweep exists.
type Listener struct {
	ConnString string
	Channel    string
	Backoff    time.Duration
	Handler    Handler
}

func New(connString, channel string, backoff time.Duration, handler Handler) *Listener {
	return &Listener{ConnString: connString, Channel: channel, Backoff: backoff, Handler: handler}
}

// Run blocks until ctx is cancelled, reconnecting with a fixed backoff.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("change feed connection lost", "channel", l.Channel, "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(l.Backoff):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.ConnString)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.Channel}.Sanitize()); err != nil {
		return err
	}
	slog.Info("change feed listening", "channel", l.Channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		event, err := ParseEvent([]byte(notification.Payload))
		if err != nil {
			slog.Error("undecodable change payload dropped", "channel", l.Channel, "err", err)
			continue
		}

		// Handler errors are not redelivered here; the recovery sweep
		// picks up anything the handler failed to finish.
		if err := l.Handler(ctx, event.Before, event.After); err != nil {
			slog.Error("change handler failed", "channel", l.Channel, "err", err)
		}
	}
}
