package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/courierlog/backend/internal/domain/report"
	"github.com/courierlog/backend/internal/domain/shared"
)

// Sheet names of the payroll workbook
const (
	SheetWeekly = "Weekly Payroll"
	SheetDaily  = "Daily Breakdown"
	SheetScans  = "Scans"
)

// PayrollExporter renders a weekly payroll report as a single xlsx workbook
// with one sheet per aggregate.
type PayrollExporter struct{}

// NewPayrollExporter creates a new PayrollExporter
func NewPayrollExporter() *PayrollExporter {
	return &PayrollExporter{}
}

// Write renders the report and streams the workbook to w
func (e *PayrollExporter) Write(rep *report.PayrollReport, w io.Writer) error {
	f, err := e.build(rep)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

// Filename returns the download name for the report's week
func (e *PayrollExporter) Filename(rep *report.PayrollReport) string {
	return fmt.Sprintf("payroll_week_%s.xlsx", shared.FormatDate(rep.Week.Start))
}

func (e *PayrollExporter) build(rep *report.PayrollReport) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := e.writeWeekly(f, rep); err != nil {
		f.Close()
		return nil, err
	}
	if err := e.writeDaily(f, rep); err != nil {
		f.Close()
		return nil, err
	}
	if err := e.writeScans(f, rep); err != nil {
		f.Close()
		return nil, err
	}

	// Drop the default sheet so the workbook opens on the weekly rollup
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func (e *PayrollExporter) writeWeekly(f *excelize.File, rep *report.PayrollReport) error {
	if _, err := f.NewSheet(SheetWeekly); err != nil {
		return err
	}

	header := []any{"Driver Name", "Email", "Total Deliveries", "Week Start", "Week End"}
	if err := f.SetSheetRow(SheetWeekly, "A1", &header); err != nil {
		return err
	}

	for i, row := range rep.Weekly {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			row.DriverName,
			row.Email,
			row.TotalDeliveries,
			shared.FormatDate(rep.Week.Start),
			shared.FormatDate(rep.Week.End),
		}
		if err := f.SetSheetRow(SheetWeekly, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func (e *PayrollExporter) writeDaily(f *excelize.File, rep *report.PayrollReport) error {
	if _, err := f.NewSheet(SheetDaily); err != nil {
		return err
	}

	header := []any{"Driver Name", "Email", "Date", "Total Deliveries"}
	if err := f.SetSheetRow(SheetDaily, "A1", &header); err != nil {
		return err
	}

	for i, row := range rep.Daily {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			row.DriverName,
			row.Email,
			shared.FormatDate(row.Date),
			row.TotalDeliveries,
		}
		if err := f.SetSheetRow(SheetDaily, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func (e *PayrollExporter) writeScans(f *excelize.File, rep *report.PayrollReport) error {
	if _, err := f.NewSheet(SheetScans); err != nil {
		return err
	}

	header := []any{"Driver Name", "Email", "Date", "Group Code", "Scanner Code", "Delivered Count"}
	if err := f.SetSheetRow(SheetScans, "A1", &header); err != nil {
		return err
	}

	for i, row := range rep.Scans {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			row.DriverName,
			row.DriverEmail,
			shared.FormatDate(row.DeliveryDate),
			row.GroupCode,
			row.ScannerCode,
			row.DeliveredCount,
		}
		if err := f.SetSheetRow(SheetScans, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
