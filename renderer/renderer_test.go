package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/sepandasadi/partnership"
	"github.com/sepandasadi/partnership/date"
)

func testBook(t *testing.T) *partnership.Book {
	t.Helper()
	b := partnership.NewBook()
	partners := []partnership.Partner{
		{ID: "gp", Name: "Sponsor", OwnershipPercent: 10, Role: partnership.GeneralPartner, JoinDate: date.MustParse("2023-01-01")},
		{ID: "lp", Name: "Investor", OwnershipPercent: 90, Role: partnership.LimitedPartner, JoinDate: date.MustParse("2023-01-01")},
	}
	for _, p := range partners {
		if err := b.AddPartner(p); err != nil {
			t.Fatalf("AddPartner() error = %v", err)
		}
	}
	contributions := []partnership.CapitalContribution{
		{ID: "c1", PartnerID: "gp", Date: date.MustParse("2023-01-01"), Type: partnership.InitialContribution, Amount: partnership.M(10000), Status: partnership.Verified},
		{ID: "c2", PartnerID: "lp", Date: date.MustParse("2023-01-01"), Type: partnership.InitialContribution, Amount: partnership.M(90000), Status: partnership.Verified},
	}
	for _, c := range contributions {
		if err := b.Contribute(c); err != nil {
			t.Fatalf("Contribute() error = %v", err)
		}
	}
	return b
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("markdown does not contain %q:\n%s", w, got)
		}
	}
}

func TestLedgerMarkdown(t *testing.T) {
	b := testBook(t)
	s, err := b.NewSnapshot(date.MustParse("2024-01-01"))
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	got := LedgerMarkdown(s, partnership.DefaultConfig(), Options{})
	assertContains(t, got,
		"# Capital Ledger on 2024-01-01",
		"Sponsor", "Investor",
		"$90,000.00",
		"$7,200.00",
		"$100,000.00",
		"8.00% a year",
	)
}

func TestAllocationMarkdown(t *testing.T) {
	b := testBook(t)
	cfg := partnership.DefaultConfig()
	d, err := b.Project(date.MustParse("2024-01-01"), partnership.M(150000), cfg)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	got := AllocationMarkdown(d, b.Partners(), cfg, Options{Currency: "USD"})
	assertContains(t, got,
		"# Projected Distribution on 2024-01-01",
		"Total Amount: $150,000.00",
		"## Waterfall Tiers",
		"Return of Capital",
		"GP Catch-up",
		"$1,000.00",
		"## Allocations",
		"$15,900.00",
		"$134,100.00",
		"89.40%",
	)

	cfg.CatchUp = false
	got = AllocationMarkdown(d, b.Partners(), cfg, Options{})
	assertContains(t, got, "disabled")
}

func TestPerformanceMarkdown(t *testing.T) {
	perfs := []partnership.PartnerPerformance{
		{PartnerID: "lp", Name: "Investor", On: date.MustParse("2024-01-01"), TotalContributions: partnership.M(100000), TotalDistributions: partnership.M(120000), ROI: 0.2, MOIC: 1.2, IRR: 0.2, HoldingPeriodMonths: 12, AnnualizedReturn: 0.2},
		{PartnerID: "gp", Name: "Sponsor", On: date.MustParse("2024-01-01"), IRRErr: errors.New("no distribution yet")},
	}
	got := PerformanceMarkdown(perfs, Options{})
	assertContains(t, got,
		"# Partner Performance on 2024-01-01",
		"$120,000.00",
		"20.00%",
		"1.20x",
		"n/a",
		"## IRR not available",
		"Sponsor: no distribution yet",
	)

	assertContains(t, PerformanceMarkdown(nil, Options{}), "No partner.")
}

func TestCashFlowsMarkdown(t *testing.T) {
	p := partnership.Partner{ID: "lp", Name: "Investor"}
	flows := []partnership.CashFlowEntry{
		{PartnerID: "lp", Date: date.MustParse("2023-01-01"), Amount: partnership.M(-1000), Description: "capital"},
		{PartnerID: "gp", Date: date.MustParse("2023-01-01"), Amount: partnership.M(-5)},
		{PartnerID: "lp", Date: date.MustParse("2024-01-01"), Amount: partnership.M(1200), Description: "sale"},
	}
	got := CashFlowsMarkdown(p, flows, 0.2, nil, Options{})
	assertContains(t, got, "# Cash Flows of Investor", "-$1,000.00", "$1,200.00", "$200.00", "IRR: 20.00%")
	if strings.Contains(got, "$5.00") {
		t.Errorf("CashFlowsMarkdown() includes another partner's flow:\n%s", got)
	}
}
