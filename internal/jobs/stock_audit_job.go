package jobs

import (
	"context"
	"log/slog"

	"printfarm/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultStockAuditSchedule runs the audit every five minutes.
const DefaultStockAuditSchedule = "0 */5 * * * *"

type AuditReservationsHandler interface {
	Handle(ctx context.Context, query queries.AuditReservationsQuery) (queries.AuditReservationsResponse, error)
}

// AuditRecorder receives every audit outcome, keyed by product code.
type AuditRecorder interface {
	RecordAudit(drifts map[string]int)
	RecordAuditFailure()
}

// StockAuditJob compares each product's reserved counter with the
// quantities on its live orders. It only reads and reports; drift is never
// corrected automatically.
type StockAuditJob struct {
	handler  AuditReservationsHandler
	recorder AuditRecorder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStockAuditJob creates the audit job. An empty schedule falls back to
// DefaultStockAuditSchedule; recorder may be nil.
func NewStockAuditJob(
	handler AuditReservationsHandler,
	recorder AuditRecorder,
	schedule string,
	logger *slog.Logger,
) *StockAuditJob {
	if schedule == "" {
		schedule = DefaultStockAuditSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StockAuditJob{
		handler:  handler,
		recorder: recorder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stock_audit_job"),
	}
}

func (j *StockAuditJob) Name() string {
	return "stock audit"
}

// Start schedules the audit.
func (j *StockAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stock audit job started", "schedule", j.schedule)
	return nil
}

// Run performs one audit pass.
func (j *StockAuditJob) Run(ctx context.Context) error {
	res, err := j.handler.Handle(ctx, queries.NewAuditReservationsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Stock audit failed", "error", err)
		if j.recorder != nil {
			j.recorder.RecordAuditFailure()
		}
		return err
	}

	drifts := make(map[string]int, len(res.Drifts))
	for _, d := range res.Drifts {
		drifts[d.Code] = d.Drift()
		j.logger.WarnContext(ctx, "Reserved stock drift",
			"product_id", d.ProductID.String(),
			"product_code", d.Code,
			"reserved", d.Reserved,
			"expected", d.Expected,
			"drift", d.Drift(),
		)
	}
	if j.recorder != nil {
		j.recorder.RecordAudit(drifts)
	}

	j.logger.InfoContext(ctx, "Stock audit finished", "checked", res.Checked, "drifted", len(res.Drifts))
	return nil
}

// Stop stops the audit job.
func (j *StockAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stock audit job stopped")
}
