package kpi

import (
	"fmt"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/models"
	"nfm-facility/app/reports"
	"nfm-facility/app/routes/shared"
)

const podium = 5

type Handler struct {
	Store   Store
	Engine  *aggregation.Engine
	DataDir string
}

// Summary condenses a KPI report for the page header.
type Summary struct {
	Workers          int     `json:"workers"`
	AvgAttendancePct float64 `json:"avg_attendance_pct"`
	AvgKpi           float64 `json:"avg_kpi"`
	TotalOvertime    float64 `json:"total_ot"`
	TotalFleetHours  float64 `json:"total_fleet_hours"`
}

// Report is the scored roster for a period.
type Report struct {
	From    string               `json:"from"`
	To      string               `json:"to"`
	Rows    []aggregation.KpiRow `json:"rows"`
	Summary Summary              `json:"summary"`
	Top     []aggregation.KpiRow `json:"top"`
	Bottom  []aggregation.KpiRow `json:"bottom"`
}

func (h *Handler) report(c *fiber.Ctx) (*Report, error) {
	start, end, err := shared.Range(c)
	if err != nil {
		return nil, err
	}
	ctx := c.UserContext()
	workers, err := h.Store.ListWorkers(ctx, true)
	if err != nil {
		return nil, err
	}
	if pos := strings.TrimSpace(c.Query("position")); pos != "" {
		workers = byPosition(workers, pos)
	}
	attendance, err := h.Store.ListAttendance(ctx, start, end)
	if err != nil {
		return nil, err
	}
	orders, err := h.Store.ListWorkOrders(ctx, start, end)
	if err != nil {
		return nil, err
	}
	usage, err := h.Store.ListFleetUsage(ctx, start, end)
	if err != nil {
		return nil, err
	}
	rows, err := h.Engine.BuildKpiReport(workers, attendance, orders, usage, start, end)
	if err != nil {
		return nil, err
	}

	// Top and bottom are always ranked by score, whatever order the table uses.
	ranked := make([]aggregation.KpiRow, len(rows))
	copy(ranked, rows)
	aggregation.SortByKpi(ranked)
	if c.Query("sort", "kpi") != "code" {
		rows = ranked
	}

	rep := &Report{
		From:    start.Format(shared.DateLayout),
		To:      end.Format(shared.DateLayout),
		Rows:    rows,
		Summary: summarize(rows),
		Top:     ranked[:min(podium, len(ranked))],
		Bottom:  bottom(ranked),
	}
	return rep, nil
}

// bottom is the last podium rows of ranked, still highest score first.
func bottom(ranked []aggregation.KpiRow) []aggregation.KpiRow {
	out := make([]aggregation.KpiRow, 0, podium)
	return append(out, ranked[max(0, len(ranked)-podium):]...)
}

func byPosition(workers []models.Worker, position string) []models.Worker {
	out := []models.Worker{}
	for _, w := range workers {
		if strings.EqualFold(w.Position, position) {
			out = append(out, w)
		}
	}
	return out
}

func summarize(rows []aggregation.KpiRow) Summary {
	s := Summary{Workers: len(rows)}
	if len(rows) == 0 {
		return s
	}
	var att, kpi float64
	for _, r := range rows {
		att += r.AttendancePct
		kpi += r.KpiScore
		s.TotalOvertime += r.TotalOvertimeHours
		s.TotalFleetHours += r.FleetHours
	}
	n := float64(len(rows))
	s.AvgAttendancePct = roundTo1(att / n)
	s.AvgKpi = roundTo1(kpi / n)
	return s
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GetKpiAPI scores active workers over ?from=&to=. ?format=csv downloads the table.
func (h *Handler) GetKpiAPI(c *fiber.Ctx) error {
	rep, err := h.report(c)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	if f, ok := reports.ParseFormat(c.Query("format")); ok {
		name := fmt.Sprintf("kpi_%s_%s.%s", rep.From, rep.To, f)
		return shared.Download(c, reports.Kpi(rep.Rows), f, name, h.DataDir)
	}
	return c.JSON(fiber.Map{"success": true, "kpi": rep})
}
