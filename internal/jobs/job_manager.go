package jobs

import (
	"fmt"
	"log/slog"
	"slices"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  Job
}

// JobManager starts and stops the service's background jobs as one unit.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
	logger  *slog.Logger
}

// NewJobManager wires the delivery assignment sweep.
func NewJobManager(assigner PendingOrdersAssigner, assignmentSchedule string, logger *slog.Logger) *JobManager {
	jm := &JobManager{logger: logger}
	jm.Add("delivery assignment", NewDeliveryAssignmentJob(assigner, assignmentSchedule, logger))
	return jm
}

// Add registers a job. It must be called before StartAll.
func (jm *JobManager) Add(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts the jobs in registration order. When one fails, the ones
// already started are stopped again.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.started = append(jm.started, j)
		jm.logger.Info("job started", "job", j.name)
	}
	return nil
}

// StopAll stops the started jobs in reverse order and waits for running ones to
// return.
func (jm *JobManager) StopAll() {
	for _, j := range slices.Backward(jm.started) {
		j.job.Stop()
	}
	jm.started = nil
}
