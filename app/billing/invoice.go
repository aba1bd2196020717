// Package billing prices a month of site services for the client and issues document numbers.
package billing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ErrNegativeAmount is returned when an invoice input is below zero.
var ErrNegativeAmount = errors.New("invoice amounts must not be negative")

// Lines are the cost components an invoice is built from.
type Lines struct {
	Labour      decimal.Decimal
	Fleet       decimal.Decimal
	Other       decimal.Decimal
	OverheadPct decimal.Decimal
}

// Totals is a priced invoice.
type Totals struct {
	LabourTotal    decimal.Decimal `json:"labour_total"`
	FleetTotal     decimal.Decimal `json:"fleet_total"`
	OtherTotal     decimal.Decimal `json:"other_total"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	OverheadPct    decimal.Decimal `json:"overhead_pct"`
	OverheadAmount decimal.Decimal `json:"overhead_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// Compute adds overhead to the sum of the lines: subtotal * pct / 100, rounded to two decimals.
func Compute(l Lines) (Totals, error) {
	for _, v := range []decimal.Decimal{l.Labour, l.Fleet, l.Other, l.OverheadPct} {
		if v.IsNegative() {
			return Totals{}, ErrNegativeAmount
		}
	}
	subtotal := l.Labour.Add(l.Fleet).Add(l.Other)
	overhead := subtotal.Mul(l.OverheadPct).Div(hundred).Round(2)
	return Totals{
		LabourTotal:    l.Labour,
		FleetTotal:     l.Fleet,
		OtherTotal:     l.Other,
		Subtotal:       subtotal,
		OverheadPct:    l.OverheadPct,
		OverheadAmount: overhead,
		GrandTotal:     subtotal.Add(overhead),
	}, nil
}

// NextInvoiceNumber follows last, the latest number issued for the month: INV-YYYYMM-001, -002, ...
// An empty or unparsable last number starts the sequence again.
func NextInvoiceNumber(year, month int, last string) string {
	return fmt.Sprintf("INV-%04d%02d-%03d", year, month, sequence(last)+1)
}

// NextWorkOrderNumber follows last in the NPS-WO-NNN sequence, keeping any custom prefix.
func NextWorkOrderNumber(last string) string {
	const fallback = "NPS-WO"
	if last == "" {
		return fallback + "-001"
	}
	i := strings.LastIndex(last, "-")
	if i <= 0 {
		return fallback + "-001"
	}
	n, err := strconv.Atoi(last[i+1:])
	if err != nil {
		return fallback + "-001"
	}
	return fmt.Sprintf("%s-%03d", last[:i], n+1)
}

func sequence(number string) int {
	i := strings.LastIndex(number, "-")
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(number[i+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
