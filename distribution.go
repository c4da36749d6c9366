package partnership

import (
	"github.com/sepandasadi/partnership/date"
	"github.com/shopspring/decimal"
)

// Distribution is a dated cash event split among partners.
//
// Projected distributions are hypothetical: they never change capital balances.
type Distribution struct {
	ID          string                `json:"id,omitempty"`
	Date        date.Date             `json:"date" validate:"required"`
	TotalAmount Money                 `json:"totalAmount" validate:"gte=0"`
	Projected   bool                  `json:"isProjected,omitempty"`
	Allocations []PartnerDistribution `json:"allocations" validate:"dive"`
	Notes       string                `json:"notes,omitempty"`
}

// Realized reports whether the distribution actually happened.
func (d Distribution) Realized() bool { return !d.Projected }

// PartnerDistribution is one partner's share of a distribution, tier by tier.
type PartnerDistribution struct {
	PartnerID         string  `json:"partnerId" validate:"required"`
	ReturnOfCapital   Money   `json:"returnOfCapital" validate:"gte=0"`
	PreferredReturn   Money   `json:"preferredReturn" validate:"gte=0"`
	Catchup           Money   `json:"catchup" validate:"gte=0"`
	RemainingProfit   Money   `json:"remainingProfit" validate:"gte=0"`
	TotalDistribution Money   `json:"totalDistribution"`
	PercentOfTotal    float64 `json:"percentOfTotal"`
}

// Total returns the sum of the four tiers.
func (pd PartnerDistribution) Total() Money {
	return Sum(pd.ReturnOfCapital, pd.PreferredReturn, pd.Catchup, pd.RemainingProfit)
}

// Profit returns the part of the allocation that is not a return of capital.
func (pd PartnerDistribution) Profit() Money {
	return pd.Total().Sub(pd.ReturnOfCapital)
}

// amount returns the allocation of a single tier.
func (pd PartnerDistribution) amount(t Tier) Money {
	switch t {
	case TierReturnOfCapital:
		return pd.ReturnOfCapital
	case TierPreferredReturn:
		return pd.PreferredReturn
	case TierCatchup:
		return pd.Catchup
	default:
		return pd.RemainingProfit
	}
}

// add adds 'm' to the allocation of a single tier.
func (pd *PartnerDistribution) add(t Tier, m Money) {
	switch t {
	case TierReturnOfCapital:
		pd.ReturnOfCapital = pd.ReturnOfCapital.Add(m)
	case TierPreferredReturn:
		pd.PreferredReturn = pd.PreferredReturn.Add(m)
	case TierCatchup:
		pd.Catchup = pd.Catchup.Add(m)
	default:
		pd.RemainingProfit = pd.RemainingProfit.Add(m)
	}
}

// round rounds each tier to cents.
func (pd *PartnerDistribution) round() {
	pd.ReturnOfCapital = pd.ReturnOfCapital.Round()
	pd.PreferredReturn = pd.PreferredReturn.Round()
	pd.Catchup = pd.Catchup.Round()
	pd.RemainingProfit = pd.RemainingProfit.Round()
}

// setTotals fills TotalDistribution and PercentOfTotal.
func (pd *PartnerDistribution) setTotals(total Money) {
	pd.TotalDistribution = pd.Total()
	pd.PercentOfTotal = 0
	if total.IsPositive() {
		pd.PercentOfTotal = pd.TotalDistribution.Ratio(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
}
