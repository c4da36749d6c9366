package partnership

import (
	"fmt"

	"github.com/sepandasadi/partnership/date"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Allocate splits 'total' among the active partners through the waterfall tiers.
//
// Each tier consumes from the cash left by the previous ones:
//
//  1. return of capital, pro-rata to unreturned balances, capped by each balance;
//  2. preferred return, pro-rata to outstanding accruals, capped by each accrual;
//  3. catch-up, to general partners until their tier 2 and 3 profit reaches
//     GPPromotePercent of cumulative profit;
//  4. the residual, by ownership or with a promote split.
//
// A disabled tier allocates nothing. Amounts are rounded to cents and the
// rounding residual goes to the last partner with a non-zero allocation, even
// when every share rounds to zero, so that allocations add up to 'total'
// exactly. Only active partners are
// allocated, in input order.
func Allocate(total Money, on date.Date, partners []Partner, capital CapitalState, accrual AccrualState, cfg WaterfallConfig) ([]PartnerDistribution, error) {
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: cannot distribute a negative amount %s on %s", ErrInvalidInput, total, on)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eligible := activePartners(partners)
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: no active partner to distribute %s to on %s", ErrInvalidState, total, on)
	}
	total = total.Round()

	w := waterfall{
		partners:    eligible,
		allocations: make([]PartnerDistribution, len(eligible)),
		remaining:   total,
	}
	for i, p := range eligible {
		w.allocations[i].PartnerID = p.ID
	}

	if cfg.ReturnOfCapital {
		w.fill(TierReturnOfCapital, w.claims(capital.Unreturned))
	}
	if cfg.PreferredReturn {
		w.fill(TierPreferredReturn, w.claims(accrual))
	}
	if cfg.CatchUp {
		w.catchup(capital, partners, cfg.GPPromotePercent)
	}
	w.residual(cfg)

	w.round(total)
	return w.allocations, nil
}

// waterfall is the running state of an allocation.
type waterfall struct {
	partners    []Partner // eligible partners
	allocations []PartnerDistribution
	remaining   Money
}

// claims returns each eligible partner's claim, never negative.
func (w *waterfall) claims(m map[string]Money) []Money {
	res := make([]Money, len(w.partners))
	for i, p := range w.partners {
		res[i] = m[p.ID].Max(Money{})
	}
	return res
}

// fill pays every claim in full if the remaining cash allows it, or pro-rata to the claims otherwise.
func (w *waterfall) fill(t Tier, claims []Money) {
	requested := Sum(claims...)
	if requested.IsZero() || w.remaining.IsZero() {
		w.log(t, Money{})
		return
	}
	paid := requested.Min(w.remaining)
	ratio := paid.Ratio(requested)
	for i, claim := range claims {
		w.allocations[i].add(t, claim.Mul(ratio))
	}
	w.remaining = w.remaining.Sub(paid)
	w.log(t, paid)
}

// pay splits 'amount' among the partners selected by 'keep', by ownership.
// Partners with no ownership share equally when none of them owns anything.
func (w *waterfall) pay(t Tier, amount Money, keep func(Partner) bool) {
	var weights []decimal.Decimal
	var indexes []int
	sum := decimal.Zero
	for i, p := range w.partners {
		if !keep(p) {
			continue
		}
		weight := decimal.NewFromFloat(p.OwnershipPercent)
		weights = append(weights, weight)
		indexes = append(indexes, i)
		sum = sum.Add(weight)
	}
	if len(indexes) == 0 || amount.IsZero() {
		return
	}
	for k, i := range indexes {
		share := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(indexes))))
		if sum.IsPositive() {
			share = weights[k].Div(sum)
		}
		w.allocations[i].add(t, amount.Mul(share))
	}
	w.remaining = w.remaining.Sub(amount)
}

// catchup pays general partners enough for their tier 2 and 3 share of
// cumulative profit, this distribution included, to reach 'promote'.
//
// The amount c solves (gp + c) / (profit + c) = promote.
func (w *waterfall) catchup(capital CapitalState, partners []Partner, promote float64) {
	hasPromote := false
	for _, p := range w.partners {
		hasPromote = hasPromote || p.IsPromote()
	}
	if !hasPromote || promote <= 0 || w.remaining.IsZero() {
		w.log(TierCatchup, Money{})
		return
	}
	profit, gp := capital.profitToDate(partners)
	for i, p := range w.partners {
		pref := w.allocations[i].PreferredReturn
		profit = profit.Add(pref)
		if p.IsPromote() {
			gp = gp.Add(pref)
		}
	}

	c := w.remaining
	if promote < 1 {
		p := decimal.NewFromFloat(promote)
		c = profit.Mul(p).Sub(gp).Div(decimal.NewFromInt(1).Sub(p))
	}
	c = c.Max(Money{}).Min(w.remaining)
	w.pay(TierCatchup, c, Partner.IsPromote)
	w.log(TierCatchup, c)
}

// residual splits whatever remains.
func (w *waterfall) residual(cfg WaterfallConfig) {
	amount := w.remaining
	var gps, lps int
	for _, p := range w.partners {
		if p.IsPromote() {
			gps++
		} else {
			lps++
		}
	}
	all := func(Partner) bool { return true }
	isLP := func(p Partner) bool { return !p.IsPromote() }
	switch {
	case cfg.SplitMode != SplitByPromote, gps == 0:
		w.pay(TierResidual, amount, all)
	case lps == 0:
		w.pay(TierResidual, amount, Partner.IsPromote)
	default:
		promote := amount.Mul(decimal.NewFromFloat(cfg.GPPromotePercent))
		w.pay(TierResidual, promote, Partner.IsPromote)
		w.pay(TierResidual, amount.Sub(promote), isLP)
	}
	w.log(TierResidual, amount)
}

// round rounds every allocation to cents and gives the rounding residual to
// the last partner holding a non-zero tier, on its highest such tier. When
// every share rounds to zero the residual goes to the last partner that was
// allocated something before rounding, on the highest tier it got.
func (w *waterfall) round(total Money) {
	fallback, fallbackTier := len(w.allocations)-1, TierResidual
	if i, t, ok := w.highest(func(Money) bool { return true }); ok {
		fallback, fallbackTier = i, t
	}
	var sum Money
	for i := range w.allocations {
		w.allocations[i].round()
		sum = sum.Add(w.allocations[i].Total())
	}
	if diff := total.Sub(sum); !diff.IsZero() {
		i, t, ok := w.highest(func(v Money) bool { return !v.Add(diff).IsNegative() })
		if !ok {
			i, t = fallback, fallbackTier
		}
		w.allocations[i].add(t, diff)
		logger.WithFields(logrus.Fields{"partner": w.allocations[i].PartnerID, "tier": t, "residual": diff}).Debug("rounding residual absorbed")
	}
	for i := range w.allocations {
		w.allocations[i].setTotals(total)
	}
}

// highest returns the last allocation and its highest tier holding a non-zero amount accepted by 'keep'.
func (w *waterfall) highest(keep func(Money) bool) (int, Tier, bool) {
	for i := len(w.allocations) - 1; i >= 0; i-- {
		for k := len(allTiers) - 1; k >= 0; k-- {
			t := allTiers[k]
			if v := w.allocations[i].amount(t); !v.IsZero() && keep(v) {
				return i, t, true
			}
		}
	}
	return 0, 0, false
}

func (w *waterfall) log(t Tier, amount Money) {
	logger.WithFields(logrus.Fields{"tier": t, "amount": amount, "remaining": w.remaining}).Debug("tier allocated")
}
