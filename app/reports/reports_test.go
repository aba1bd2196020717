package reports

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"nfm-facility/app/aggregation"
)

func sampleRows() []aggregation.LaborRow {
	return []aggregation.LaborRow{
		{
			WorkerCode: "NPS-001", FullName: "Ali Hassan", Position: "Cleaner",
			DaysPresent: 26, TotalHours: 208, PayableHours: 208,
			Salary: decimal.NewFromInt(416000), HourlyRate: decimal.NewFromInt(2000),
			BasicPay: decimal.NewFromInt(416000), OvertimePay: decimal.Zero, TotalPay: decimal.NewFromInt(416000),
		},
		{
			WorkerCode: "NPS-002", FullName: "Omar, Jr.", Position: "Driver",
			DaysPresent: 1, DaysAbsent: 2, TotalHours: 10, TotalOvertimeHours: 2, PayableHours: 10, PayableOvertimeHours: 2,
			Salary: decimal.NewFromInt(52000), HourlyRate: decimal.NewFromInt(250),
			BasicPay: decimal.NewFromInt(2500), OvertimePay: decimal.NewFromInt(500), TotalPay: decimal.NewFromInt(3000),
		},
	}
}

func TestPayrollCSV(t *testing.T) {
	rows := sampleRows()
	data, err := RenderCSV(Payroll(rows, aggregation.SumLabor(rows)))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header, 2 rows and totals, got %d records", len(records))
	}
	if records[0][0] != "Worker Code" || records[0][len(records[0])-1] != "Total Pay" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[2][1] != "Omar, Jr." {
		t.Fatalf("comma in name should survive quoting, got %q", records[2][1])
	}
	if records[2][4] != "10.00" || records[2][10] != "3000" {
		t.Fatalf("unexpected row: %v", records[2])
	}
	total := records[3]
	if total[0] != "TOTAL" || total[1] != "2 workers" || total[10] != "419000" {
		t.Fatalf("unexpected totals row: %v", total)
	}
}

func TestAttendanceSummaryXLSX(t *testing.T) {
	data, err := RenderXLSX(AttendanceSummary(sampleRows()))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Worker Code" || rows[1][0] != "NPS-001" {
		t.Fatalf("unexpected cells: %v / %v", rows[0], rows[1])
	}
	if got := rows[1][len(rows[1])-1]; got != "416000" {
		t.Fatalf("total pay cell: got %q", got)
	}
}

func TestKpiTable(t *testing.T) {
	rows := []aggregation.KpiRow{{LaborRow: aggregation.LaborRow{WorkerCode: "NPS-001"}, KpiScore: 72}}
	table := Kpi(rows)
	if len(table.Rows) != 1 || len(table.Rows[0]) != len(table.Headers) {
		t.Fatalf("row width %d does not match headers %d", len(table.Rows[0]), len(table.Headers))
	}
	if table.Rows[0][len(table.Headers)-1] != 72.0 {
		t.Fatalf("kpi cell: got %v", table.Rows[0][len(table.Headers)-1])
	}
}

func TestTablesAreRectangular(t *testing.T) {
	rows := sampleRows()
	for _, table := range []Table{AttendanceSummary(rows), Payroll(rows, aggregation.SumLabor(rows))} {
		for i, r := range table.Rows {
			if len(r) != len(table.Headers) {
				t.Fatalf("%s row %d: %d cells for %d headers", table.Title, i, len(r), len(table.Headers))
			}
		}
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	path, err := Save(dir, FileName("payroll", 2024, 3, CSV), []byte("a,b\n"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "payroll_2024_03.csv" {
		t.Fatalf("unexpected file name: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "a,b\n" {
		t.Fatalf("read back: %q %v", data, err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, ok := ParseFormat("xlsx"); !ok || f != XLSX {
		t.Fatalf("xlsx not accepted")
	}
	if _, ok := ParseFormat("pdf"); ok {
		t.Fatalf("pdf should not be a download format")
	}
}
