package partnership

import (
	"iter"

	"github.com/sepandasadi/partnership/date"
	"github.com/shopspring/decimal"
)

// Snapshot is the capital ledger of the partnership on a single date.
// It is a stateless calculator that computes all values on-the-fly by
// processing journal events up to its 'on' date (inclusive).
type Snapshot struct {
	journal *Journal
	on      date.Date
}

// On returns the date of the snapshot.
func (s *Snapshot) On() date.Date { return s.on }

// Partners returns the partners of the snapshot, in their original order.
func (s *Snapshot) Partners() []Partner { return s.journal.Partners() }

// events returns an iterator over a partner's journal events up to the snapshot's date.
func (s *Snapshot) events(partnerID string) iter.Seq[event] {
	return func(yield func(event) bool) {
		for _, e := range s.journal.events {
			if e.date().After(s.on) {
				break
			}
			if e.partner() != partnerID {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Contributed returns the counted capital contributed by a partner.
func (s *Snapshot) Contributed(partnerID string) Money {
	var total Money
	for e := range s.events(partnerID) {
		if v, ok := e.(contributeCapital); ok {
			total = total.Add(v.amount)
		}
	}
	return total
}

// UnreturnedCapital returns the capital of a partner not yet returned by tier 1.
//
// The balance is floored at zero after every event, so it is never negative
// and never exceeds Contributed.
func (s *Snapshot) UnreturnedCapital(partnerID string) Money {
	var balance Money
	for e := range s.events(partnerID) {
		balance = applyCapital(balance, e)
	}
	return balance
}

// applyCapital returns the unreturned balance after the event.
func applyCapital(balance Money, e event) Money {
	switch v := e.(type) {
	case contributeCapital:
		return balance.Add(v.amount)
	case distributeTier:
		if v.tier == TierReturnOfCapital {
			return balance.Sub(v.amount).Max(Money{})
		}
	}
	return balance
}

// Distributed returns the cumulative realized distributions to a partner, tier by tier.
func (s *Snapshot) Distributed(partnerID string) PartnerDistribution {
	res := PartnerDistribution{PartnerID: partnerID}
	for e := range s.events(partnerID) {
		if v, ok := e.(distributeTier); ok {
			res.add(v.tier, v.amount)
		}
	}
	res.TotalDistribution = res.Total()
	return res
}

// DistributedIn returns the total realized distributions to a partner within a range.
func (s *Snapshot) DistributedIn(partnerID string, r date.Range) Money {
	var total Money
	for e := range s.events(partnerID) {
		if v, ok := e.(distributeTier); ok && r.Contains(v.on) {
			total = total.Add(v.amount)
		}
	}
	return total
}

// CapitalState is the capital ledger of every partner on a date.
type CapitalState struct {
	On          date.Date
	Contributed map[string]Money
	Unreturned  map[string]Money
	// Distributed holds cumulative realized distributions by tier.
	Distributed map[string]PartnerDistribution
}

// Capital computes the capital state of every partner.
func (s *Snapshot) Capital() CapitalState {
	state := CapitalState{
		On:          s.on,
		Contributed: make(map[string]Money),
		Unreturned:  make(map[string]Money),
		Distributed: make(map[string]PartnerDistribution),
	}
	for _, p := range s.journal.partners {
		state.Contributed[p.ID] = s.Contributed(p.ID)
		state.Unreturned[p.ID] = s.UnreturnedCapital(p.ID)
		state.Distributed[p.ID] = s.Distributed(p.ID)
	}
	return state
}

// profitToDate returns the cumulative profit distributed to all partners, and
// the part of it paid to promote partners through tiers 2 and 3.
func (c CapitalState) profitToDate(partners []Partner) (total, promote Money) {
	for _, p := range partners {
		d := c.Distributed[p.ID]
		total = total.Add(d.Profit())
		if p.IsPromote() {
			promote = promote.Add(d.PreferredReturn).Add(d.Catchup)
		}
	}
	return total, promote
}

var daysPerYear = decimal.NewFromInt(365)

// AccruedPreferred returns a partner's preferred return accrued and not yet paid.
//
// The preferred rate accrues on the unreturned balance in force during each
// interval between events, Actual/365. With CompoundAccrual, unpaid accrual
// joins the accrual base. A disabled preferred tier always accrues zero.
func (s *Snapshot) AccruedPreferred(partnerID string, cfg WaterfallConfig) Money {
	if !cfg.PreferredReturn || cfg.PreferredRate <= 0 {
		return Money{}
	}
	rate := decimal.NewFromFloat(cfg.PreferredRate)
	var balance, accrued, paid Money
	var last date.Date
	started := false
	accrue := func(to date.Date) {
		days := date.DaysBetween(last, to)
		if days <= 0 {
			return
		}
		base := balance
		if cfg.Accrual == CompoundAccrual {
			base = base.Add(accrued.Sub(paid).Max(Money{}))
		}
		accrued = accrued.Add(base.Mul(rate).Mul(decimal.NewFromInt(int64(days))).Div(daysPerYear))
		last = to
	}
	for e := range s.events(partnerID) {
		if !started {
			started, last = true, e.date()
		}
		accrue(e.date())
		balance = applyCapital(balance, e)
		if v, ok := e.(distributeTier); ok && v.tier == TierPreferredReturn {
			paid = paid.Add(v.amount)
		}
	}
	if started {
		accrue(s.on)
	}
	return accrued.Sub(paid).Max(Money{})
}

// AccrualState maps each partner to its outstanding preferred return.
type AccrualState map[string]Money

// Accrual computes the outstanding preferred return of every partner.
func (s *Snapshot) Accrual(cfg WaterfallConfig) AccrualState {
	state := make(AccrualState, len(s.journal.partners))
	for _, p := range s.journal.partners {
		state[p.ID] = s.AccruedPreferred(p.ID, cfg)
	}
	return state
}

// Allocate splits 'total' among the partners on the snapshot's date.
func (s *Snapshot) Allocate(total Money, cfg WaterfallConfig) ([]PartnerDistribution, error) {
	return Allocate(total, s.on, s.journal.partners, s.Capital(), s.Accrual(cfg), cfg)
}
