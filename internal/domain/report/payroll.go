package report

import (
	"context"
	"time"
)

// ScanRow is one scan joined through its group, delivery and driver. These
// are the raw rows the weekly rollup aggregates; they also feed the export's
// audit sheet unmodified.
type ScanRow struct {
	DriverName     string
	DriverEmail    string
	DeliveryDate   time.Time
	GroupCode      string
	ScannerCode    string
	DeliveredCount int
}

// WeeklyTotal is a per-driver delivered total for the whole week.
type WeeklyTotal struct {
	DriverName      string
	Email           string
	TotalDeliveries int
}

// DailyTotal is a per-driver, per-day delivered total.
type DailyTotal struct {
	DriverName      string
	Email           string
	Date            time.Time
	TotalDeliveries int
}

// PayrollReport holds the three parallel aggregates of a payroll week.
type PayrollReport struct {
	Week   WeekRange
	Weekly []WeeklyTotal
	Daily  []DailyTotal
	Scans  []ScanRow
}

// Empty reports whether the week had no payable rows.
func (r *PayrollReport) Empty() bool {
	return len(r.Weekly) == 0
}

// BuildPayroll accumulates the weekly, daily and raw aggregates in a single
// pass over the joined rows. Drivers are keyed by email; rows whose driver
// has no email cannot be keyed and are skipped. First-seen order is kept for
// both aggregates.
func BuildPayroll(week WeekRange, rows []ScanRow) *PayrollReport {
	type dayKey struct {
		email string
		date  time.Time
	}

	rep := &PayrollReport{
		Week:   week,
		Weekly: []WeeklyTotal{},
		Daily:  []DailyTotal{},
		Scans:  []ScanRow{},
	}

	weeklyIdx := map[string]int{}
	dailyIdx := map[dayKey]int{}

	for _, row := range rows {
		if row.DriverEmail == "" {
			continue
		}

		wi, ok := weeklyIdx[row.DriverEmail]
		if !ok {
			wi = len(rep.Weekly)
			weeklyIdx[row.DriverEmail] = wi
			rep.Weekly = append(rep.Weekly, WeeklyTotal{
				DriverName: row.DriverName,
				Email:      row.DriverEmail,
			})
		}
		rep.Weekly[wi].TotalDeliveries += row.DeliveredCount

		dk := dayKey{email: row.DriverEmail, date: row.DeliveryDate}
		di, ok := dailyIdx[dk]
		if !ok {
			di = len(rep.Daily)
			dailyIdx[dk] = di
			rep.Daily = append(rep.Daily, DailyTotal{
				DriverName: row.DriverName,
				Email:      row.DriverEmail,
				Date:       row.DeliveryDate,
			})
		}
		rep.Daily[di].TotalDeliveries += row.DeliveredCount

		rep.Scans = append(rep.Scans, row)
	}

	return rep
}

// ScanRowRepository defines the interface for reading the joined scan rows
// of a date range across all drivers.
type ScanRowRepository interface {
	// FindScanRows returns every scan with delivery_date inside the
	// inclusive range, joined to its group, delivery, driver and scanner.
	FindScanRows(ctx context.Context, start, end time.Time) ([]ScanRow, error)
}
