package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/models"
)

type stubStore struct {
	err      error
	from, to time.Time
}

func (s *stubStore) ListWorkers(context.Context, bool) ([]models.Worker, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Worker{{ID: "w1", Code: "W001", FullName: "Ali", Status: models.WorkerActive, Salary: decimal.NewFromInt(208000)}}, nil
}

func (s *stubStore) ListAttendance(_ context.Context, start, end time.Time) ([]models.AttendanceRecord, error) {
	s.from, s.to = start, end
	return []models.AttendanceRecord{
		{WorkerID: "w1", Date: start, Status: models.Present, HoursWorked: 8},
	}, nil
}

func TestIsMonthEndRun(t *testing.T) {
	cases := []struct {
		at   time.Time
		want bool
	}{
		{time.Date(2024, 2, 29, 20, 5, 0, 0, time.UTC), true},
		{time.Date(2023, 2, 28, 20, 5, 30, 0, time.UTC), true},
		{time.Date(2024, 2, 28, 20, 5, 0, 0, time.UTC), false},
		{time.Date(2024, 12, 31, 20, 6, 0, 0, time.UTC), false},
		{time.Date(2024, 4, 30, 8, 5, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := IsMonthEndRun(tc.at); got != tc.want {
			t.Errorf("IsMonthEndRun(%s) = %v, want %v", tc.at, got, tc.want)
		}
	}
}

func TestExportPayroll(t *testing.T) {
	dir := t.TempDir()
	store := &stubStore{}
	s := &Scheduler{Store: store, Engine: aggregation.New(aggregation.DefaultPolicy()), DataDir: dir}

	path, err := s.ExportPayroll(context.Background(), 2024, 2)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if path != filepath.Join(dir, "payroll_2024_02.csv") {
		t.Fatalf("path = %s", path)
	}
	if store.to.Day() != 29 {
		t.Fatalf("period ends %s", store.to)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "W001") || !strings.Contains(string(data), "TOTAL") {
		t.Fatalf("csv = %s", data)
	}
}

func TestExportPayrollStoreError(t *testing.T) {
	s := &Scheduler{Store: &stubStore{err: errors.New("down")}, Engine: aggregation.New(aggregation.DefaultPolicy()), DataDir: t.TempDir()}
	if _, err := s.ExportPayroll(context.Background(), 2024, 2); err == nil {
		t.Fatal("expected error")
	}
}
