package tracking

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPollInterval        = 10 * time.Second
	DefaultReconnectMaxElapsed = 2 * time.Minute
)

var errFinished = errors.New("order finished")

// API is what the tracker needs from the server.
type API interface {
	Snapshot(ctx context.Context, orderID kernel.UUID) (queries.OrderSnapshot, error)
	Dial(ctx context.Context) (*websocket.Conn, error)
}

type Config struct {
	// PollInterval is the period of snapshot polling. Defaults to 10s.
	PollInterval time.Duration
	// ReconnectMaxElapsed bounds how long the tracker keeps trying to reopen a lost
	// live channel before it settles for polling only. Defaults to 2m.
	ReconnectMaxElapsed time.Duration
	// OnUpdate receives every changed view. Calls are serialized.
	OnUpdate func(View)
}

// Tracker keeps a Model for one order in sync with the server: it polls the
// snapshot, listens on the live channel, and re-polls as soon as an order_update
// for the order arrives.
type Tracker struct {
	api     API
	orderID kernel.UUID
	cfg     Config
	logger  *slog.Logger

	mu    sync.Mutex
	model *Model

	refetch chan struct{}
}

func NewTracker(api API, orderID kernel.UUID, cfg Config, logger *slog.Logger) *Tracker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.ReconnectMaxElapsed <= 0 {
		cfg.ReconnectMaxElapsed = DefaultReconnectMaxElapsed
	}
	if cfg.OnUpdate == nil {
		cfg.OnUpdate = func(View) {}
	}

	return &Tracker{
		api:     api,
		orderID: orderID,
		cfg:     cfg,
		logger:  logger.With("component", "tracker", "order_id", orderID.String()),
		model:   NewModel(orderID),
		refetch: make(chan struct{}, 1),
	}
}

// View returns the current rendered state.
func (t *Tracker) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.model.View()
}

// Run tracks the order until ctx is done or the order is delivered or cancelled,
// in which case it returns nil. ErrOrderNotVisible is returned when the server
// refuses the order. Live channel failures are never returned; the tracker falls
// back to polling.
func (t *Tracker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return t.poll(ctx) })
	g.Go(func() error { return t.listen(ctx) })

	err := g.Wait()
	if errors.Is(err, errFinished) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (t *Tracker) poll(ctx context.Context) error {
	ticker := time.NewTicker(t.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := t.refresh(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-t.refetch:
		}
	}
}

// refresh fetches and applies one snapshot. Transient failures keep the last
// known state on screen.
func (t *Tracker) refresh(ctx context.Context) error {
	snapshot, err := t.api.Snapshot(ctx, t.orderID)
	switch {
	case err == nil:
	case errors.Is(err, ErrOrderNotVisible):
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		t.logger.Warn("snapshot fetch failed", "error", err)
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.model.ApplySnapshot(snapshot) {
		t.cfg.OnUpdate(t.model.View())
	}
	if t.model.View().Finished() {
		return errFinished
	}
	return nil
}

func (t *Tracker) listen(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = t.cfg.ReconnectMaxElapsed
	b := backoff.WithContext(policy, ctx)

	for {
		var conn *websocket.Conn
		err := backoff.RetryNotify(func() error {
			c, err := t.api.Dial(ctx)
			if err != nil {
				return err
			}
			conn = c
			return nil
		}, b, func(err error, wait time.Duration) {
			t.logger.Debug("live channel unavailable, retrying", "error", err, "wait", wait)
		})
		if err != nil {
			if ctx.Err() == nil {
				t.logger.Warn("live channel given up, polling only", "error", err)
			}
			return nil
		}

		b.Reset()
		// pushes sent while disconnected are lost
		t.requestRefetch()
		t.consume(ctx, conn)

		if ctx.Err() != nil {
			return nil
		}
	}
}

// consume reads live messages until the connection fails or ctx is done.
func (t *Tracker) consume(ctx context.Context, conn *websocket.Conn) {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	for {
		var msg ports.LiveMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() == nil {
				t.logger.Debug("live channel lost", "error", err)
			}
			return
		}
		t.apply(msg)
	}
}

func (t *Tracker) apply(msg ports.LiveMessage) {
	t.mu.Lock()
	changed, refetch := t.model.ApplyMessage(msg)
	if changed {
		t.cfg.OnUpdate(t.model.View())
	}
	t.mu.Unlock()

	if refetch {
		t.requestRefetch()
	}
}

// requestRefetch wakes the poller; requests coalesce while one is pending.
func (t *Tracker) requestRefetch() {
	select {
	case t.refetch <- struct{}{}:
	default:
	}
}
