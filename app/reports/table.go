// Package reports renders engine output as downloadable tables (CSV and XLSX) and archives them.
package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"nfm-facility/app/aggregation"
)

// Table is a rectangular report: one header row and typed cells.
// Cells are string, int, float64 or decimal.Decimal.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]any
}

// Format is a download format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// ParseFormat accepts "csv" and "xlsx"; anything else is not a download.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case CSV, XLSX:
		return Format(s), true
	}
	return "", false
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Render encodes t in format f.
func Render(t Table, f Format) ([]byte, error) {
	if f == XLSX {
		return RenderXLSX(t)
	}
	return RenderCSV(t)
}

var (
	attendanceHeaders = []string{"Worker Code", "Full Name", "Position", "Present", "Absent", "Leave",
		"Total Hours", "OT Hours", "Salary", "Hourly Rate", "Basic Pay", "OT Pay (x1)", "Total Pay"}
	payrollHeaders = []string{"Worker Code", "Full Name", "Position", "Present", "Payable Hours", "Payable OT",
		"Salary", "Hourly Rate", "Basic Pay", "OT Pay (x1)", "Total Pay"}
	kpiHeaders = []string{"Worker Code", "Full Name", "Position", "Present", "Absent", "OT Hours",
		"WO Total", "WO Closed", "Fleet Hours", "Attendance %", "OT Score", "WO Score", "Fleet Score", "KPI"}
)

// AttendanceSummary lists per-worker attendance and pay for a month.
func AttendanceSummary(rows []aggregation.LaborRow) Table {
	t := Table{Title: "Attendance Summary", Headers: attendanceHeaders}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.WorkerCode, r.FullName, r.Position, r.DaysPresent, r.DaysAbsent, r.DaysLeave,
			r.TotalHours, r.TotalOvertimeHours, r.Salary, r.HourlyRate, r.BasicPay, r.OvertimePay, r.TotalPay,
		})
	}
	return t
}

// Payroll lists per-worker pay with a closing totals row.
func Payroll(rows []aggregation.LaborRow, totals aggregation.LaborTotals) Table {
	t := Table{Title: "Payroll", Headers: payrollHeaders}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.WorkerCode, r.FullName, r.Position, r.DaysPresent, r.PayableHours, r.PayableOvertimeHours,
			r.Salary, r.HourlyRate, r.BasicPay, r.OvertimePay, r.TotalPay,
		})
	}
	t.Rows = append(t.Rows, []any{
		"TOTAL", fmt.Sprintf("%d workers", totals.Workers), "", "", "", "", "", "",
		totals.BasicPay, totals.OvertimePay, totals.TotalPay,
	})
	return t
}

// Kpi lists workers with their KPI breakdown in the given order.
func Kpi(rows []aggregation.KpiRow) Table {
	t := Table{Title: "Worker KPI", Headers: kpiHeaders}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.WorkerCode, r.FullName, r.Position, r.DaysPresent, r.DaysAbsent, r.TotalOvertimeHours,
			r.WorkOrdersTotal, r.WorkOrdersClosed, r.FleetHours, r.AttendancePct, r.OvertimeScore,
			r.WorkOrderScore, r.FleetScore, r.KpiScore,
		})
	}
	return t
}

// Save writes data to dir/name, creating dir when needed, and returns the full path.
func Save(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// FileName builds names such as payroll_2024_03.csv.
func FileName(base string, year, month int, f Format) string {
	return fmt.Sprintf("%s_%04d_%02d.%s", base, year, month, f)
}

func cellText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case decimal.Decimal:
		return x.String()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
