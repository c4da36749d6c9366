package partnership

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sepandasadi/partnership/date"
	"github.com/sirupsen/logrus"
)

// Book holds the records of a partnership: partners, capital contributions,
// distributions and partner cash flows.
//
// Records are append-only: the book never changes an allocation once recorded.
type Book struct {
	partners      []Partner
	contributions []CapitalContribution
	distributions []Distribution
	cashFlows     []CashFlowEntry
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{}
}

func (b *Book) Partners() []Partner                  { return slices.Clone(b.partners) }
func (b *Book) Contributions() []CapitalContribution { return slices.Clone(b.contributions) }
func (b *Book) Distributions() []Distribution        { return slices.Clone(b.distributions) }
func (b *Book) CashFlowEntries() []CashFlowEntry     { return slices.Clone(b.cashFlows) }

func (b *Book) partnerIndex(id string) int {
	return slices.IndexFunc(b.partners, func(p Partner) bool { return p.ID == id })
}

// Partner returns the partner with this id.
func (b *Book) Partner(id string) (Partner, bool) {
	i := b.partnerIndex(id)
	if i < 0 {
		return Partner{}, false
	}
	return b.partners[i], true
}

// AddPartner adds a partner. Ids must be unique.
func (b *Book) AddPartner(p Partner) error {
	if p.Status == "" {
		p.Status = Active
	}
	if err := ValidatePartners([]Partner{p}, false); err != nil {
		return err
	}
	if b.partnerIndex(p.ID) >= 0 {
		return fmt.Errorf("%w: duplicate partner id %q", ErrInvalidInput, p.ID)
	}
	b.partners = append(b.partners, p)
	return nil
}

// Contribute records a capital contribution of a known partner.
func (b *Book) Contribute(c CapitalContribution) error {
	if err := ValidateContribution(c); err != nil {
		return err
	}
	if b.partnerIndex(c.PartnerID) < 0 {
		return fmt.Errorf("%w: contribution %q references unknown partner %q", ErrInvalidState, c.ID, c.PartnerID)
	}
	b.contributions = append(b.contributions, c)
	return nil
}

// Record appends a distribution.
//
// A realized distribution cannot be dated before the last realized one: each
// distribution is based on the ledger as of its date, and recording an earlier
// one would change the basis of allocations already made.
func (b *Book) Record(d Distribution) error {
	if err := ValidateDistribution(d); err != nil {
		return err
	}
	for _, a := range d.Allocations {
		if b.partnerIndex(a.PartnerID) < 0 {
			return fmt.Errorf("%w: distribution %q allocates to unknown partner %q", ErrInvalidState, d.ID, a.PartnerID)
		}
	}
	if d.Realized() {
		if last, ok := b.lastRealized(); ok && d.Date.Before(last) {
			return fmt.Errorf("%w: distribution %q on %s is dated before the last realized distribution on %s", ErrInvalidState, d.ID, d.Date, last)
		}
	}
	b.distributions = append(b.distributions, d)
	return nil
}

func (b *Book) lastRealized() (date.Date, bool) {
	var last date.Date
	found := false
	for _, d := range b.distributions {
		if d.Realized() && (!found || d.Date.After(last)) {
			last, found = d.Date, true
		}
	}
	return last, found
}

// AddCashFlow records a partner cash flow entry.
func (b *Book) AddCashFlow(e CashFlowEntry) error {
	if err := ValidateCashFlow(e); err != nil {
		return err
	}
	if b.partnerIndex(e.PartnerID) < 0 {
		return fmt.Errorf("%w: cash flow references unknown partner %q", ErrInvalidState, e.PartnerID)
	}
	b.cashFlows = append(b.cashFlows, e)
	return nil
}

// Validate checks every record of the book. In strict mode active ownership must sum to 100.
func (b *Book) Validate(strict bool) error {
	if err := ValidatePartners(b.partners, strict); err != nil {
		return err
	}
	_, err := newJournal(b.partners, b.contributions, b.distributions)
	return err
}

// NewSnapshot returns the capital ledger of the book on a date.
func (b *Book) NewSnapshot(on date.Date) (*Snapshot, error) {
	j, err := newJournal(b.partners, b.contributions, b.distributions)
	if err != nil {
		return nil, fmt.Errorf("invalid book: %w", err)
	}
	return j.NewSnapshot(on), nil
}

// CashFlows returns the cash flows of every partner up to 'on'.
//
// Recorded entries are used for partners that have some; the flows of the
// other partners are derived from their contributions and distributions.
func (b *Book) CashFlows(on date.Date) []CashFlowEntry {
	recorded := make(map[string]bool)
	var res []CashFlowEntry
	for _, e := range b.cashFlows {
		recorded[e.PartnerID] = true
		if !e.Date.After(on) {
			res = append(res, e)
		}
	}
	for _, e := range CashFlowsFromHistory(b.contributions, b.distributions, on) {
		if !recorded[e.PartnerID] {
			res = append(res, e)
		}
	}
	return res
}

// Project allocates 'amount' on a date without recording it.
func (b *Book) Project(on date.Date, amount Money, cfg WaterfallConfig) (Distribution, error) {
	s, err := b.NewSnapshot(on)
	if err != nil {
		return Distribution{}, err
	}
	allocations, err := s.Allocate(amount, cfg)
	if err != nil {
		return Distribution{}, err
	}
	return Distribution{
		ID:          uuid.NewString(),
		Date:        on,
		TotalAmount: amount.Round(),
		Projected:   true,
		Allocations: allocations,
	}, nil
}

// Distribute allocates 'amount' on a date and records it as realized.
func (b *Book) Distribute(on date.Date, amount Money, cfg WaterfallConfig, notes string) (Distribution, error) {
	d, err := b.Project(on, amount, cfg)
	if err != nil {
		return Distribution{}, err
	}
	d.Projected = false
	d.Notes = notes
	if err := b.Record(d); err != nil {
		return Distribution{}, err
	}
	logger.WithFields(logrus.Fields{"id": d.ID, "date": d.Date, "amount": d.TotalAmount}).Info("distribution recorded")
	return d, nil
}
