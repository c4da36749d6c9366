package partnership

import (
	"testing"

	"github.com/sepandasadi/partnership/date"
)

// D is a helper for test to parse dates from const.
func D(s string) date.Date { return date.MustParse(s) }

func gp(id string, ownership float64) Partner {
	return Partner{ID: id, Name: id, OwnershipPercent: ownership, Role: GeneralPartner, Status: Active, JoinDate: D("2024-01-01")}
}

func lp(id string, ownership float64) Partner {
	return Partner{ID: id, Name: id, OwnershipPercent: ownership, Role: LimitedPartner, Status: Active, JoinDate: D("2024-01-01")}
}

func contribution(partnerID, on string, amount float64) CapitalContribution {
	return CapitalContribution{ID: partnerID + "-" + on, PartnerID: partnerID, Date: D(on), Type: InitialContribution, Amount: M(amount), Status: Verified}
}

// newTestBook creates a book from records, failing the test on error.
func newTestBook(t *testing.T, partners []Partner, contributions ...CapitalContribution) *Book {
	t.Helper()
	b := NewBook()
	for _, p := range partners {
		if err := b.AddPartner(p); err != nil {
			t.Fatalf("AddPartner(%q) error = %v", p.ID, err)
		}
	}
	for _, c := range contributions {
		if err := b.Contribute(c); err != nil {
			t.Fatalf("Contribute(%q) error = %v", c.ID, err)
		}
	}
	return b
}

// noTiers is a config where only the residual tier allocates.
func noTiers() WaterfallConfig {
	cfg := DefaultConfig()
	cfg.ReturnOfCapital = false
	cfg.PreferredReturn = false
	cfg.CatchUp = false
	return cfg
}

func sumTotals(allocs []PartnerDistribution) Money {
	var total Money
	for _, a := range allocs {
		total = total.Add(a.TotalDistribution)
	}
	return total
}

func byPartner(allocs []PartnerDistribution) map[string]PartnerDistribution {
	res := make(map[string]PartnerDistribution, len(allocs))
	for _, a := range allocs {
		res[a.PartnerID] = a
	}
	return res
}
