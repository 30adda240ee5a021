package jobs

import (
	"context"
	"errors"
	"log/slog"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// DefaultAssignmentSchedule runs the sweep every five seconds.
const DefaultAssignmentSchedule = "*/5 * * * * *"

// PendingOrdersAssigner assigns delivery partners to every ready, unassigned order.
type PendingOrdersAssigner interface {
	Handle(ctx context.Context, cmd commands.AssignPendingOrdersCommand) (int, error)
}

// DeliveryAssignmentJob retries assignment for orders that found no free partner
// when they became ready for pickup.
type DeliveryAssignmentJob struct {
	handler  PendingOrdersAssigner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDeliveryAssignmentJob creates the sweep job. schedule is a six field cron
// expression (seconds first); an empty schedule uses DefaultAssignmentSchedule.
// Runs never overlap: a tick that fires while the previous sweep is still running
// is skipped.
func NewDeliveryAssignmentJob(handler PendingOrdersAssigner, schedule string, logger *slog.Logger) *DeliveryAssignmentJob {
	if schedule == "" {
		schedule = DefaultAssignmentSchedule
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &DeliveryAssignmentJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "delivery_assignment_job"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start schedules the sweep.
func (j *DeliveryAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Delivery assignment job started", "schedule", j.schedule)
	return nil
}

// Stop cancels a running sweep and waits for it to return.
func (j *DeliveryAssignmentJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.Info("Delivery assignment job stopped")
}

func (j *DeliveryAssignmentJob) run() {
	assigned, err := j.handler.Handle(j.ctx, commands.NewAssignPendingOrdersCommand())
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoPartnerAvailable):
		// Expected while partners are busy; the next tick retries.
		j.logger.DebugContext(j.ctx, "orders still waiting for a partner", "assigned", assigned)
	case errors.Is(err, context.Canceled):
		return
	default:
		j.logger.ErrorContext(j.ctx, "Delivery assignment job failed", "error", err, "assigned", assigned)
		return
	}

	if assigned > 0 {
		j.logger.InfoContext(j.ctx, "delivery partners assigned", "count", assigned)
	}
}
