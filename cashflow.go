package partnership

import (
	"slices"

	"github.com/sepandasadi/partnership/date"
)

// CashFlowEntry is a signed cash movement seen from the partner's side:
// negative when capital goes out of the partner's pocket, positive when it comes back.
type CashFlowEntry struct {
	PartnerID   string    `json:"partnerId" validate:"required"`
	Date        date.Date `json:"date" validate:"required"`
	Amount      Money     `json:"amount"`
	Description string    `json:"description,omitempty"`
}

// CashFlowsFromHistory derives the cash flows of every partner from counted
// contributions and realized distributions dated on or before 'on'.
//
// The result is sorted by date, contributions first on a same day.
func CashFlowsFromHistory(contributions []CapitalContribution, distributions []Distribution, on date.Date) []CashFlowEntry {
	var flows []CashFlowEntry
	for _, c := range contributions {
		if !c.Counts() || c.Date.After(on) {
			continue
		}
		flows = append(flows, CashFlowEntry{
			PartnerID:   c.PartnerID,
			Date:        c.Date,
			Amount:      c.Amount.Neg(),
			Description: string(c.Type) + " contribution",
		})
	}
	for _, d := range distributions {
		if !d.Realized() || d.Date.After(on) {
			continue
		}
		for _, a := range d.Allocations {
			if a.Total().IsZero() {
				continue
			}
			flows = append(flows, CashFlowEntry{
				PartnerID:   a.PartnerID,
				Date:        d.Date,
				Amount:      a.Total(),
				Description: "distribution",
			})
		}
	}
	slices.SortStableFunc(flows, func(a, b CashFlowEntry) int { return a.Date.Compare(b.Date) })
	return flows
}

// partnerCashFlows returns the (date, amount) pairs of a partner.
func partnerCashFlows(partnerID string, entries []CashFlowEntry) []CashFlow {
	var flows []CashFlow
	for _, e := range entries {
		if e.PartnerID == partnerID {
			flows = append(flows, CashFlow{Date: e.Date, Amount: e.Amount.Float()})
		}
	}
	return flows
}
