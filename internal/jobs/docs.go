// Package jobs provides scheduled background tasks for the print farm.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled)
// and are started and stopped through JobManager.
//
// # Available Jobs
//
// StockAuditJob compares every product's reserved counter with the sum of
// quantities on its live orders (anything not cancelled or deleted). Drift
// is logged per product and exported through the AuditRecorder; nothing is
// corrected.
//
// # Usage
//
//	audit := jobs.NewStockAuditJob(auditHandler, metrics, cfg.StockAuditSchedule, logger)
//	jobManager := jobs.NewJobManager(audit)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed audit pass is logged and counted by the recorder; the next pass
// runs on schedule. A failed start stops the jobs already running.
package jobs
