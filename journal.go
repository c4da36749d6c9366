package partnership

import (
	"fmt"
	"slices"

	"github.com/sepandasadi/partnership/date"
)

// event represents a single, atomic capital movement of one partner.
// It is the lowest-level, immutable fact from which all states are derived.
type event interface {
	date() date.Date
	partner() string
	rank() int // orders events of a same day
}

// Journal holds a chronologically sorted list of all atomic events.
type Journal struct {
	partners []Partner
	events   []event // sorted by date
}

// contributeCapital increases the partner's capital basis.
type contributeCapital struct {
	on        date.Date
	partnerID string
	amount    Money
}

func (e contributeCapital) date() date.Date { return e.on }
func (e contributeCapital) partner() string { return e.partnerID }
func (e contributeCapital) rank() int       { return 0 }

// distributeTier pays one tier of a realized distribution to a partner.
type distributeTier struct {
	on        date.Date
	partnerID string
	tier      Tier
	amount    Money
}

func (e distributeTier) date() date.Date { return e.on }
func (e distributeTier) partner() string { return e.partnerID }
func (e distributeTier) rank() int       { return int(e.tier) }

// newJournal converts partnership records into a Journal of atomic events.
//
// Pending and rejected contributions and projected distributions produce no
// event. Any record referencing a partner not in 'partners' is an error.
func newJournal(partners []Partner, contributions []CapitalContribution, distributions []Distribution) (*Journal, error) {
	known := make(map[string]struct{}, len(partners))
	for _, p := range partners {
		known[p.ID] = struct{}{}
	}
	j := &Journal{
		partners: partners,
		events:   make([]event, 0, len(contributions)+4*len(distributions)),
	}
	for _, c := range contributions {
		if _, ok := known[c.PartnerID]; !ok {
			return nil, fmt.Errorf("%w: contribution %q on %s references unknown partner %q", ErrInvalidState, c.ID, c.Date, c.PartnerID)
		}
		if !c.Counts() {
			continue
		}
		j.events = append(j.events, contributeCapital{on: c.Date, partnerID: c.PartnerID, amount: c.Amount})
	}
	for _, d := range distributions {
		for _, a := range d.Allocations {
			if _, ok := known[a.PartnerID]; !ok {
				return nil, fmt.Errorf("%w: distribution %q on %s allocates %s to unknown partner %q", ErrInvalidState, d.ID, d.Date, a.Total(), a.PartnerID)
			}
		}
		if !d.Realized() {
			continue
		}
		for _, a := range d.Allocations {
			for _, t := range allTiers {
				if amount := a.amount(t); !amount.IsZero() {
					j.events = append(j.events, distributeTier{on: d.Date, partnerID: a.PartnerID, tier: t, amount: amount})
				}
			}
		}
	}
	slices.SortStableFunc(j.events, func(a, b event) int {
		if c := a.date().Compare(b.date()); c != 0 {
			return c
		}
		return a.rank() - b.rank()
	})
	return j, nil
}

// Partners returns the partners known to the journal.
func (j *Journal) Partners() []Partner { return slices.Clone(j.partners) }

// Partner returns the partner with this id.
func (j *Journal) Partner(id string) (Partner, bool) {
	i := slices.IndexFunc(j.partners, func(p Partner) bool { return p.ID == id })
	if i < 0 {
		return Partner{}, false
	}
	return j.partners[i], true
}

// NewSnapshot returns a view of the journal on a given date.
func (j *Journal) NewSnapshot(on date.Date) *Snapshot {
	return &Snapshot{journal: j, on: on}
}
