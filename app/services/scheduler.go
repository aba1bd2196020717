package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/models"
	"nfm-facility/app/reports"
)

const runTimeout = 2 * time.Minute

// PayrollStore is what the month-end payroll export reads.
type PayrollStore interface {
	ListWorkers(ctx context.Context, onlyActive bool) ([]models.Worker, error)
	ListAttendance(ctx context.Context, start, end time.Time) ([]models.AttendanceRecord, error)
}

// Scheduler runs month-end jobs.
type Scheduler struct {
	Store   PayrollStore
	Engine  *aggregation.Engine
	DataDir string
	Now     func() time.Time
}

// StartScheduler starts the background task scheduler
func (s *Scheduler) StartScheduler(ctx context.Context) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("Scheduler stopped")
				return
			case <-ticker.C:
			}

			now := s.Now()
			if !IsMonthEndRun(now) {
				continue
			}
			log.Println("Triggering scheduled tasks [20:05, month end]...")
			runCtx, cancel := context.WithTimeout(ctx, runTimeout)
			path, err := s.ExportPayroll(runCtx, now.Year(), int(now.Month()))
			cancel()
			if err != nil {
				log.Printf("Error exporting month-end payroll: %v", err)
				continue
			}
			log.Printf("Month-end payroll written to %s", path)
		}
	}()
}

// IsMonthEndRun reports whether t is 20:05 on the last day of its month.
func IsMonthEndRun(t time.Time) bool {
	return t.Hour() == 20 && t.Minute() == 5 && t.AddDate(0, 0, 1).Day() == 1
}

// ExportPayroll computes the month's payroll for the active roster and saves it as CSV in DataDir.
func (s *Scheduler) ExportPayroll(ctx context.Context, year, month int) (string, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	workers, err := s.Store.ListWorkers(ctx, true)
	if err != nil {
		return "", fmt.Errorf("load workers: %w", err)
	}
	attendance, err := s.Store.ListAttendance(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("load attendance: %w", err)
	}
	rows, err := s.Engine.ComputeLaborTotals(workers, attendance, start, end, true)
	if err != nil {
		return "", err
	}
	data, err := reports.Render(reports.Payroll(rows, aggregation.SumLabor(rows)), reports.CSV)
	if err != nil {
		return "", err
	}
	return reports.Save(s.DataDir, reports.FileName("payroll", year, month, reports.CSV), data)
}
