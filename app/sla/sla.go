// Package sla evaluates work orders against their service-level targets.
package sla

import (
	"sort"
	"time"

	"nfm-facility/app/models"
)

// IsOverdue reports whether an unfinished order has run past requestedAt + slaHours.
// Orders without an SLA are never overdue.
func IsOverdue(requestedAt time.Time, slaHours int, status models.WorkOrderStatus, now time.Time) bool {
	if requestedAt.IsZero() || slaHours <= 0 || status.IsClosed() {
		return false
	}
	return now.After(requestedAt.Add(time.Duration(slaHours) * time.Hour))
}

// Item is one work order with its SLA outcome.
type Item struct {
	models.WorkOrder
	FixHours float64 `json:"fix_hours"`
	Overdue  bool    `json:"is_overdue"`
	Met      bool    `json:"sla_met"`
	Missed   bool    `json:"sla_miss"`
}

// PriorityStat is the SLA compliance of one priority band.
type PriorityStat struct {
	Priority string  `json:"priority"`
	Met      int     `json:"sla_met"`
	Missed   int     `json:"sla_miss"`
	Rate     float64 `json:"sla_rate"`
}

// Summary aggregates evaluated items.
type Summary struct {
	Total       int            `json:"total"`
	Open        int            `json:"open"`
	Closed      int            `json:"closed"`
	Overdue     int            `json:"overdue"`
	Met         int            `json:"sla_met"`
	Missed      int            `json:"sla_miss"`
	MetRate     float64        `json:"sla_rate"`
	AvgFixHours float64        `json:"avg_fix_hours"`
	ByPriority  []PriorityStat `json:"by_priority"`
	// Overdue counts per building, or per WC group for orders without a building.
	OverdueByLocation map[string]int `json:"overdue_by_location"`
}

// Evaluate scores each order as of now.
//
// An open order is overdue once its target date is before today; without a target date the SLA hours
// decide. A closed order with a target date meets its SLA when it closed on or before that date.
func Evaluate(orders []models.WorkOrder, now time.Time) []Item {
	today := dateOf(now)
	items := make([]Item, 0, len(orders))
	for _, wo := range orders {
		it := Item{WorkOrder: wo}
		if wo.ClosedAt != nil && wo.ClosedAt.After(wo.RequestedAt) {
			it.FixHours = wo.ClosedAt.Sub(wo.RequestedAt).Hours()
		}
		if wo.Status.IsOpen() {
			if wo.TargetDate != nil {
				it.Overdue = dateOf(*wo.TargetDate).Before(today)
			} else {
				it.Overdue = IsOverdue(wo.RequestedAt, wo.SLAHours, wo.Status, now)
			}
		}
		if wo.Status.IsClosed() && wo.TargetDate != nil && wo.ClosedAt != nil {
			it.Met = !dateOf(*wo.ClosedAt).After(dateOf(*wo.TargetDate))
			it.Missed = !it.Met
		}
		items = append(items, it)
	}
	return items
}

// Summarize counts outcomes. Rates are percentages; the average fix time ignores orders not yet fixed.
func Summarize(items []Item) Summary {
	s := Summary{Total: len(items), ByPriority: []PriorityStat{}, OverdueByLocation: map[string]int{}}
	byPriority := map[string]*PriorityStat{}
	var fixSum float64
	var fixed int

	for _, it := range items {
		switch {
		case it.Status.IsOpen():
			s.Open++
		case it.Status.IsClosed():
			s.Closed++
		}
		if it.Overdue {
			s.Overdue++
			s.OverdueByLocation[locationOf(it.WorkOrder)]++
		}
		if it.FixHours > 0 {
			fixSum += it.FixHours
			fixed++
		}
		if !it.Met && !it.Missed {
			continue
		}
		p := string(it.Priority)
		if p == "" {
			p = "Unspecified"
		}
		ps, ok := byPriority[p]
		if !ok {
			ps = &PriorityStat{Priority: p}
			byPriority[p] = ps
		}
		if it.Met {
			s.Met++
			ps.Met++
		} else {
			s.Missed++
			ps.Missed++
		}
	}

	s.MetRate = rate(s.Met, s.Missed)
	if fixed > 0 {
		s.AvgFixHours = fixSum / float64(fixed)
	}
	for _, ps := range byPriority {
		ps.Rate = rate(ps.Met, ps.Missed)
		s.ByPriority = append(s.ByPriority, *ps)
	}
	sort.Slice(s.ByPriority, func(i, j int) bool { return s.ByPriority[i].Priority < s.ByPriority[j].Priority })
	return s
}

func rate(met, missed int) float64 {
	if met+missed == 0 {
		return 0
	}
	return float64(met) / float64(met+missed) * 100
}

func locationOf(wo models.WorkOrder) string {
	switch {
	case wo.BuildingName != "":
		return wo.BuildingName
	case wo.WCGroupName != "":
		return wo.WCGroupName
	}
	return "Unassigned"
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
