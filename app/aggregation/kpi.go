package aggregation

import (
	"math"
	"sort"
	"time"

	"nfm-facility/app/models"
)

// WorkOrderStats counts a worker's work orders in a period.
type WorkOrderStats struct {
	Total  int
	Closed int
}

// FleetStats sums a worker's fleet usage in a period.
type FleetStats struct {
	HoursUsed float64
}

// KpiRow is a labour row extended with the worker's performance scores.
type KpiRow struct {
	LaborRow

	WorkOrdersTotal  int     `json:"wo_total"`
	WorkOrdersClosed int     `json:"wo_closed"`
	FleetHours       float64 `json:"fleet_hours"`

	AttendancePct  float64 `json:"attendance_pct"`
	OvertimeScore  float64 `json:"ot_score"`
	WorkOrderScore float64 `json:"wo_score"`
	FleetScore     float64 `json:"fleet_score"`
	KpiScore       float64 `json:"kpi_score"`
}

// ComputeKpiScore scores one worker. Every sub-score lies in [0, 100] and the composite is
// rounded to one decimal.
func (e *Engine) ComputeKpiScore(labor LaborRow, wo WorkOrderStats, fleet FleetStats) KpiRow {
	p := e.policy
	row := KpiRow{
		LaborRow:         labor,
		WorkOrdersTotal:  wo.Total,
		WorkOrdersClosed: wo.Closed,
		FleetHours:       fleet.HoursUsed,
	}

	if days := labor.DaysPresent + labor.DaysAbsent; days > 0 {
		row.AttendancePct = clamp(float64(labor.DaysPresent) / float64(days) * 100)
	}
	row.OvertimeScore = saturate(labor.TotalOvertimeHours, p.OvertimeCapHours)
	if wo.Total > 0 {
		row.WorkOrderScore = clamp(float64(wo.Closed) / float64(wo.Total) * 100)
	}
	row.FleetScore = saturate(fleet.HoursUsed, p.FleetCapHours)

	composite := p.AttendanceWeight*row.AttendancePct +
		p.OvertimeWeight*row.OvertimeScore +
		p.WorkOrderWeight*row.WorkOrderScore +
		p.FleetWeight*row.FleetScore
	row.KpiScore = round(clamp(composite), 1)
	return row
}

// BuildKpiReport scores every active worker over [start, end]. Work orders count when they were
// requested inside the period; a work order is closed when its status is Completed or Closed.
// Rows come back in worker-code order.
func (e *Engine) BuildKpiReport(workers []models.Worker, attendance []models.AttendanceRecord, workOrders []models.WorkOrder, usage []models.FleetUsage, start, end time.Time) ([]KpiRow, error) {
	labor, err := e.ComputeLaborTotals(workers, attendance, start, end, true)
	if err != nil {
		return nil, err
	}

	woStats := make(map[string]WorkOrderStats)
	for _, wo := range workOrders {
		if wo.AssignedWorkerID == nil || !InPeriod(wo.RequestedAt, start, end) {
			continue
		}
		s := woStats[*wo.AssignedWorkerID]
		s.Total++
		if wo.Status.IsClosed() {
			s.Closed++
		}
		woStats[*wo.AssignedWorkerID] = s
	}

	fleetStats := make(map[string]FleetStats)
	for _, u := range usage {
		if u.WorkerID == nil || !InPeriod(u.UsedDate, start, end) {
			continue
		}
		s := fleetStats[*u.WorkerID]
		s.HoursUsed += u.HoursUsed
		fleetStats[*u.WorkerID] = s
	}

	rows := make([]KpiRow, 0, len(labor))
	for _, l := range labor {
		rows = append(rows, e.ComputeKpiScore(l, woStats[l.WorkerID], fleetStats[l.WorkerID]))
	}
	return rows, nil
}

// SortByKpi orders rows by KPI score, highest first, breaking ties by worker code.
func SortByKpi(rows []KpiRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].KpiScore != rows[j].KpiScore {
			return rows[i].KpiScore > rows[j].KpiScore
		}
		return rows[i].WorkerCode < rows[j].WorkerCode
	})
}

func saturate(v, limit float64) float64 {
	if limit <= 0 || v <= 0 {
		return 0
	}
	return math.Min(v, limit) / limit * 100
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
