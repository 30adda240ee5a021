// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// DeliveryAssignmentJob sweeps the orders that are ready for pickup but have no
// delivery partner yet and tries to assign one. The status change to
// ready_for_pickup already attempts an assignment; the sweep picks up the orders
// for which nobody was free at that moment.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(assignPendingOrdersHandler, "*/5 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// services.ErrNoPartnerAvailable is an expected outcome and logged at debug level.
// Any other error is logged and the sweep is retried on the next tick.
package jobs
