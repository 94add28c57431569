package report

import (
	"context"
	"time"

	"github.com/courierlog/backend/internal/domain/report"
)

// PayrollService computes the weekly payroll rollup handed to the
// spreadsheet writer.
type PayrollService struct {
	scanRowRepo report.ScanRowRepository
	now         func() time.Time
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(scanRowRepo report.ScanRowRepository) *PayrollService {
	return &PayrollService{scanRowRepo: scanRowRepo, now: time.Now}
}

// WithClock overrides the service clock. Used by tests.
func (s *PayrollService) WithClock(now func() time.Time) *PayrollService {
	s.now = now
	return s
}

// WeeklyPayroll resolves the payroll week from the optional weekStart
// parameter and builds the three parallel aggregates over the week's joined
// scan rows.
func (s *PayrollService) WeeklyPayroll(ctx context.Context, weekStart string) (*report.PayrollReport, error) {
	week, err := report.ResolveWeek(weekStart, s.now().UTC())
	if err != nil {
		return nil, err
	}

	rows, err := s.scanRowRepo.FindScanRows(ctx, week.Start, week.End)
	if err != nil {
		return nil, err
	}

	return report.BuildPayroll(week, rows), nil
}
