// Package aggregation turns a worker roster and a period's attendance, work-order and fleet rows
// into per-worker labour totals, pay estimates and KPI scores.
//
// The engine is pure: it performs no I/O, keeps no state between calls and never caches results.
// Every report page (attendance summary, payroll, invoice labour line, KPI ranking, salary slip)
// goes through the same Engine so the pay rules cannot drift between pages.
package aggregation

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"nfm-facility/app/models"
)

// ErrInvalidRange is returned when a period starts after it ends.
var ErrInvalidRange = errors.New("period start is after period end")

// Policy holds the business constants behind pay and KPI figures.
type Policy struct {
	// Hourly rate divisor: salary / (WorkingDaysPerMonth * HoursPerDay).
	// Applied to partial periods as well; it does not depend on the calendar.
	WorkingDaysPerMonth float64
	HoursPerDay         float64

	// Overtime is paid at the base hourly rate times this multiplier ("OT (x1)").
	OvertimeMultiplier float64

	// KPI saturation caps in hours.
	OvertimeCapHours float64
	FleetCapHours    float64

	// KPI composite weights. They sum to 1.
	AttendanceWeight float64
	OvertimeWeight   float64
	WorkOrderWeight  float64
	FleetWeight      float64
}

// DefaultPolicy returns the site's standing pay and KPI rules.
func DefaultPolicy() Policy {
	return Policy{
		WorkingDaysPerMonth: 26,
		HoursPerDay:         8,
		OvertimeMultiplier:  1.0,
		OvertimeCapHours:    40,
		FleetCapHours:       60,
		AttendanceWeight:    0.4,
		OvertimeWeight:      0.2,
		WorkOrderWeight:     0.2,
		FleetWeight:         0.2,
	}
}

// MonthlyHours is the number of standard hours in a month under this policy.
func (p Policy) MonthlyHours() float64 {
	return p.WorkingDaysPerMonth * p.HoursPerDay
}

// Engine computes derived labour and KPI rows. It is safe for concurrent use.
type Engine struct {
	policy Policy
}

// New returns an Engine bound to the given policy.
func New(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Policy returns the rules the engine was built with.
func (e *Engine) Policy() Policy {
	return e.policy
}

// LaborRow is the derived attendance and pay figures of one worker for one period.
type LaborRow struct {
	WorkerID   string          `json:"worker_id"`
	WorkerCode string          `json:"worker_code"`
	FullName   string          `json:"full_name"`
	Position   string          `json:"position"`
	Salary     decimal.Decimal `json:"salary"`

	DaysPresent int `json:"days_present"`
	DaysAbsent  int `json:"days_absent"`
	DaysLeave   int `json:"days_leave"`

	// Raw sums over every row in the period, whatever its status.
	TotalHours         float64 `json:"total_hours"`
	TotalOvertimeHours float64 `json:"total_ot"`

	// Sums over Present rows only; pay is computed from these.
	PayableHours         float64 `json:"payable_hours"`
	PayableOvertimeHours float64 `json:"payable_ot"`

	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	BasicPay    decimal.Decimal `json:"basic_pay"`
	OvertimePay decimal.Decimal `json:"ot_pay"`
	TotalPay    decimal.Decimal `json:"total_pay"`
}

// LaborTotals sums a set of labour rows.
type LaborTotals struct {
	Workers     int             `json:"workers"`
	BasicPay    decimal.Decimal `json:"basic_pay"`
	OvertimePay decimal.Decimal `json:"ot_pay"`
	TotalPay    decimal.Decimal `json:"total_pay"`
}

// ComputeLaborTotals aggregates attendance into one row per roster worker.
//
// Attendance rows outside [periodStart, periodEnd] (inclusive, by calendar date) or belonging to
// workers outside the roster are ignored. When onlyActive is set, inactive workers are dropped
// from the roster first. Workers without attendance still get an all-zero row. Rows come back
// ordered by worker code.
func (e *Engine) ComputeLaborTotals(workers []models.Worker, attendance []models.AttendanceRecord, periodStart, periodEnd time.Time, onlyActive bool) ([]LaborRow, error) {
	start, end := dateOf(periodStart), dateOf(periodEnd)
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	rows := make([]LaborRow, 0, len(workers))
	index := make(map[string]int, len(workers))
	for i := range workers {
		w := &workers[i]
		if onlyActive && !w.IsActive() {
			continue
		}
		index[w.ID] = len(rows)
		rows = append(rows, LaborRow{
			WorkerID:   w.ID,
			WorkerCode: w.Code,
			FullName:   w.FullName,
			Position:   w.Position,
			Salary:     w.Salary,
		})
	}

	for i := range attendance {
		a := &attendance[i]
		pos, ok := index[a.WorkerID]
		if !ok {
			continue
		}
		d := dateOf(a.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		r := &rows[pos]
		switch a.Status {
		case models.Present:
			r.DaysPresent++
			r.PayableHours += a.HoursWorked
			r.PayableOvertimeHours += a.OvertimeHours
		case models.Absent:
			r.DaysAbsent++
		case models.Leave:
			r.DaysLeave++
		}
		r.TotalHours += a.HoursWorked
		r.TotalOvertimeHours += a.OvertimeHours
	}

	for i := range rows {
		e.applyPay(&rows[i])
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].WorkerCode < rows[j].WorkerCode })
	return rows, nil
}

// HourlyRate is the monthly salary spread over the policy's standard hours.
// It is zero for a non-positive salary.
func (e *Engine) HourlyRate(salary decimal.Decimal) decimal.Decimal {
	monthly := e.policy.MonthlyHours()
	if !salary.IsPositive() || monthly <= 0 {
		return decimal.Zero
	}
	return salary.Div(decimal.NewFromFloat(monthly))
}

func (e *Engine) applyPay(r *LaborRow) {
	rate := e.HourlyRate(r.Salary)
	if rate.IsZero() {
		r.HourlyRate = decimal.Zero
		r.BasicPay = decimal.Zero
		r.OvertimePay = decimal.Zero
		r.TotalPay = decimal.Zero
		return
	}
	basic := rate.Mul(decimal.NewFromFloat(r.PayableHours))
	ot := rate.Mul(decimal.NewFromFloat(e.policy.OvertimeMultiplier)).Mul(decimal.NewFromFloat(r.PayableOvertimeHours))

	// Whole currency units, exact halves to the even unit.
	r.HourlyRate = rate.Round(2)
	r.BasicPay = basic.RoundBank(0)
	r.OvertimePay = ot.RoundBank(0)
	r.TotalPay = basic.Add(ot).RoundBank(0)
}

// SumLabor totals the pay columns of rows.
func SumLabor(rows []LaborRow) LaborTotals {
	t := LaborTotals{Workers: len(rows)}
	for _, r := range rows {
		t.BasicPay = t.BasicPay.Add(r.BasicPay)
		t.OvertimePay = t.OvertimePay.Add(r.OvertimePay)
		t.TotalPay = t.TotalPay.Add(r.TotalPay)
	}
	return t
}

// ShiftHours derives worked hours and overtime from clock-in and clock-out times of one day.
// Hours are rounded to two decimals; overtime is whatever exceeds the standard day.
// A clock-out at or before the clock-in yields zero.
func (e *Engine) ShiftHours(in, out time.Time) (hours, overtime float64) {
	if !out.After(in) {
		return 0, 0
	}
	hours = round(out.Sub(in).Hours(), 2)
	if hours > e.policy.HoursPerDay {
		overtime = round(hours-e.policy.HoursPerDay, 2)
	}
	return hours, overtime
}

// dateOf drops the clock so periods compare by calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InPeriod reports whether t falls on a calendar date within [start, end].
func InPeriod(t, start, end time.Time) bool {
	d := dateOf(t)
	return !d.Before(dateOf(start)) && !d.After(dateOf(end))
}
