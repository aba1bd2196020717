package monthlyreport

import (
	"math"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/models"
	"nfm-facility/app/reports"
	"nfm-facility/app/routes/shared"
)

const unnamedVehicle = "N/A"

type Handler struct {
	Store   Store
	DataDir string
}

type AttendanceSummary struct {
	Records int `json:"records"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

type WorkOrderSummary struct {
	Total  int `json:"total"`
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

type VehicleUsage struct {
	Vehicle string          `json:"vehicle"`
	Hours   float64         `json:"hours"`
	Cost    decimal.Decimal `json:"cost"`
}

type FleetSummary struct {
	TotalHours float64         `json:"total_hours"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Vehicles   []VehicleUsage  `json:"vehicles"`
}

// Report is the site summary for one calendar month.
type Report struct {
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Period     string            `json:"period"`
	Attendance AttendanceSummary `json:"attendance"`
	WorkOrders WorkOrderSummary  `json:"work_orders"`
	Fleet      FleetSummary      `json:"fleet"`
}

// Build summarizes a month. Work orders belong to the month they were requested in.
func Build(year, month int, attendance []models.AttendanceRecord, orders []models.WorkOrder, usage []models.FleetUsage) Report {
	rep := Report{
		Year:   year,
		Month:  month,
		Period: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006"),
	}

	rep.Attendance.Records = len(attendance)
	for _, a := range attendance {
		switch a.Status {
		case models.Present:
			rep.Attendance.Present++
		case models.Absent:
			rep.Attendance.Absent++
		}
	}

	rep.WorkOrders.Total = len(orders)
	for _, wo := range orders {
		switch {
		case wo.Status.IsOpen():
			rep.WorkOrders.Open++
		case wo.Status.IsClosed():
			rep.WorkOrders.Closed++
		}
	}

	byVehicle := map[string]*VehicleUsage{}
	total := decimal.Zero
	for i := range usage {
		u := &usage[i]
		name := u.VehicleName
		if name == "" {
			name = unnamedVehicle
		}
		v, ok := byVehicle[name]
		if !ok {
			v = &VehicleUsage{Vehicle: name, Cost: decimal.Zero}
			byVehicle[name] = v
		}
		cost := u.Cost()
		v.Hours += u.HoursUsed
		v.Cost = v.Cost.Add(cost)
		rep.Fleet.TotalHours += u.HoursUsed
		total = total.Add(cost)
	}
	rep.Fleet.TotalHours = round2(rep.Fleet.TotalHours)
	rep.Fleet.TotalCost = total.Round(2)
	rep.Fleet.Vehicles = make([]VehicleUsage, 0, len(byVehicle))
	for _, v := range byVehicle {
		v.Hours = round2(v.Hours)
		v.Cost = v.Cost.Round(2)
		rep.Fleet.Vehicles = append(rep.Fleet.Vehicles, *v)
	}
	sort.Slice(rep.Fleet.Vehicles, func(i, j int) bool {
		return rep.Fleet.Vehicles[i].Vehicle < rep.Fleet.Vehicles[j].Vehicle
	})
	return rep
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Table lays the summary out as section rows followed by the per-vehicle breakdown.
func (r Report) Table() reports.Table {
	t := reports.Table{
		Title:   "Monthly FM Report",
		Headers: []string{"Section", "Item", "Hours", "Value"},
		Rows: [][]any{
			{"Attendance", "Total records", "", r.Attendance.Records},
			{"Attendance", "Present", "", r.Attendance.Present},
			{"Attendance", "Absent", "", r.Attendance.Absent},
			{"Work Orders", "Total", "", r.WorkOrders.Total},
			{"Work Orders", "Open / In Progress", "", r.WorkOrders.Open},
			{"Work Orders", "Completed / Closed", "", r.WorkOrders.Closed},
			{"Fleet", "All vehicles", r.Fleet.TotalHours, r.Fleet.TotalCost},
		},
	}
	for _, v := range r.Fleet.Vehicles {
		t.Rows = append(t.Rows, []any{"Fleet by vehicle", v.Vehicle, v.Hours, v.Cost})
	}
	return t
}

func (h *Handler) load(c *fiber.Ctx) (*Report, error) {
	year, month, start, end, err := shared.Month(c)
	if err != nil {
		return nil, err
	}
	ctx := c.UserContext()
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
	rep := Build(year, month, attendance, orders, usage)
	return &rep, nil
}

// GetMonthlyReportAPI summarizes ?year=&month=. ?format=csv|xlsx downloads it and keeps a copy
// under the data directory.
func (h *Handler) GetMonthlyReportAPI(c *fiber.Ctx) error {
	rep, err := h.load(c)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	if f, ok := reports.ParseFormat(c.Query("format")); ok {
		archive := ""
		if h.DataDir != "" {
			archive = filepath.Join(h.DataDir, "fm_monthly_reports")
		}
		name := reports.FileName("fm_monthly_report", rep.Year, rep.Month, f)
		return shared.Download(c, rep.Table(), f, name, archive)
	}
	return c.JSON(fiber.Map{"success": true, "report": rep})
}
