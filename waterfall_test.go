package partnership

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sponsorDeal is a 10% GP and a 90% LP who both contributed on 2023-01-01.
// One year later, 8% accrued preferred is 800 and 7200.
func sponsorDeal(t *testing.T) *Book {
	t.Helper()
	return newTestBook(t, []Partner{gp("gp", 10), lp("lp", 90)},
		contribution("gp", "2023-01-01", 10000),
		contribution("lp", "2023-01-01", 90000),
	)
}

func allocate(t *testing.T, b *Book, on string, total float64, cfg WaterfallConfig) []PartnerDistribution {
	t.Helper()
	s, err := b.NewSnapshot(D(on))
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	allocs, err := s.Allocate(M(total), cfg)
	if err != nil {
		t.Fatalf("Allocate(%v) error = %v", total, err)
	}
	return allocs
}

func TestAllocate_ReturnOfCapitalOnly(t *testing.T) {
	b := newTestBook(t, []Partner{gp("gp", 20), lp("lp", 80)},
		contribution("gp", "2024-01-01", 100000),
		contribution("lp", "2024-01-01", 100000),
	)
	allocs := allocate(t, b, "2024-01-01", 50000, DefaultConfig())

	want := []PartnerDistribution{
		{PartnerID: "gp", ReturnOfCapital: M(25000), TotalDistribution: M(25000), PercentOfTotal: 50},
		{PartnerID: "lp", ReturnOfCapital: M(25000), TotalDistribution: M(25000), PercentOfTotal: 50},
	}
	if diff := cmp.Diff(want, allocs); diff != "" {
		t.Errorf("Allocate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocate_FullWaterfall(t *testing.T) {
	b := sponsorDeal(t)

	tests := []struct {
		name  string
		total float64
		cfg   func() WaterfallConfig
		want  []PartnerDistribution
	}{
		{
			name:  "partial preferred",
			total: 104000,
			cfg:   DefaultConfig,
			want: []PartnerDistribution{
				{PartnerID: "gp", ReturnOfCapital: M(10000), PreferredReturn: M(400)},
				{PartnerID: "lp", ReturnOfCapital: M(90000), PreferredReturn: M(3600)},
			},
		},
		{
			// c = (20% * 8000 - 800) / 80% = 1000, residual 41000 by ownership
			name:  "catch-up then ownership",
			total: 150000,
			cfg:   DefaultConfig,
			want: []PartnerDistribution{
				{PartnerID: "gp", ReturnOfCapital: M(10000), PreferredReturn: M(800), Catchup: M(1000), RemainingProfit: M(4100)},
				{PartnerID: "lp", ReturnOfCapital: M(90000), PreferredReturn: M(7200), RemainingProfit: M(36900)},
			},
		},
		{
			name:  "catch-up then promote",
			total: 150000,
			cfg: func() WaterfallConfig {
				cfg := DefaultConfig()
				cfg.SplitMode = SplitByPromote
				return cfg
			},
			want: []PartnerDistribution{
				{PartnerID: "gp", ReturnOfCapital: M(10000), PreferredReturn: M(800), Catchup: M(1000), RemainingProfit: M(8200)},
				{PartnerID: "lp", ReturnOfCapital: M(90000), PreferredReturn: M(7200), RemainingProfit: M(32800)},
			},
		},
		{
			name:  "disabled tiers carry forward",
			total: 1000,
			cfg:   noTiers,
			want: []PartnerDistribution{
				{PartnerID: "gp", RemainingProfit: M(100)},
				{PartnerID: "lp", RemainingProfit: M(900)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := allocate(t, b, "2024-01-01", tt.total, tt.cfg())
			for _, w := range tt.want {
				g := byPartner(got)[w.PartnerID]
				for _, tier := range allTiers {
					if !g.amount(tier).Equal(w.amount(tier)) {
						t.Errorf("%s of %q = %v, want %v", tier, w.PartnerID, g.amount(tier), w.amount(tier))
					}
				}
			}
			if total := sumTotals(got); !total.Equal(M(tt.total)) {
				t.Errorf("sum of allocations = %v, want %v", total, tt.total)
			}
		})
	}
}

func TestAllocate_CatchupReachesPromote(t *testing.T) {
	b := sponsorDeal(t)
	cfg := DefaultConfig()
	allocs := allocate(t, b, "2024-01-01", 109000, cfg)

	var profit, promote Money
	for _, a := range allocs {
		profit = profit.Add(a.PreferredReturn).Add(a.Catchup)
		if a.PartnerID == "gp" {
			promote = promote.Add(a.PreferredReturn).Add(a.Catchup)
		}
	}
	if got := promote.Ratio(profit).InexactFloat64(); math.Abs(got-cfg.GPPromotePercent) > 1e-9 {
		t.Errorf("GP share of profit after catch-up = %v, want %v", got, cfg.GPPromotePercent)
	}
	if got := byPartner(allocs)["gp"].RemainingProfit; !got.IsZero() {
		t.Errorf("RemainingProfit of gp = %v, want 0", got)
	}
}

func TestAllocate_CatchupAfterResidual(t *testing.T) {
	b := sponsorDeal(t)
	cfg := DefaultConfig()
	on := D("2024-01-01")
	if _, err := b.Distribute(on, M(150000), cfg, "sale"); err != nil {
		t.Fatalf("Distribute() error = %v", err)
	}

	// Profit to date is 50000, the GP holds 1800 of it through tiers 2 and 3:
	// c = (20% * 50000 - 1800) / 80% = 10250, the rest by ownership.
	second, err := b.Distribute(on, M(20000), cfg, "refinance")
	if err != nil {
		t.Fatalf("Distribute() error = %v", err)
	}
	want := []PartnerDistribution{
		{PartnerID: "gp", Catchup: M(10250), RemainingProfit: M(975)},
		{PartnerID: "lp", RemainingProfit: M(8775)},
	}
	got := byPartner(second.Allocations)
	for _, w := range want {
		for _, tier := range allTiers {
			if g := got[w.PartnerID].amount(tier); !g.Equal(w.amount(tier)) {
				t.Errorf("%s of %q = %v, want %v", tier, w.PartnerID, g, w.amount(tier))
			}
		}
	}

	var profit, promote Money
	for _, d := range b.Distributions() {
		for _, a := range d.Allocations {
			profit = profit.Add(a.Profit())
			if a.PartnerID == "gp" {
				promote = promote.Add(a.PreferredReturn).Add(a.Catchup)
			}
		}
	}
	// Tier 4 of the second distribution dilutes the GP again: measure before it.
	profit = profit.Sub(M(9750))
	if got := promote.Ratio(profit).InexactFloat64(); math.Abs(got-cfg.GPPromotePercent) > 1e-9 {
		t.Errorf("GP share of cumulative profit after catch-up = %v, want %v", got, cfg.GPPromotePercent)
	}
}

func TestAllocate_CatchupWithoutGeneralPartner(t *testing.T) {
	b := newTestBook(t, []Partner{lp("a", 50), lp("b", 50)},
		contribution("a", "2023-01-01", 1000),
		contribution("b", "2023-01-01", 1000),
	)
	for _, a := range allocate(t, b, "2024-01-01", 10000, DefaultConfig()) {
		if !a.Catchup.IsZero() {
			t.Errorf("Catchup of %q = %v, want 0", a.PartnerID, a.Catchup)
		}
	}
}

func TestAllocate_Rounding(t *testing.T) {
	b := newTestBook(t, []Partner{lp("a", 1), lp("b", 1), lp("c", 1)})
	allocs := allocate(t, b, "2024-01-01", 100, noTiers())

	want := []float64{33.33, 33.33, 33.34}
	for i, a := range allocs {
		if !a.TotalDistribution.Equal(M(want[i])) {
			t.Errorf("TotalDistribution of %q = %v, want %v", a.PartnerID, a.TotalDistribution, want[i])
		}
	}

	var percent float64
	for _, a := range allocs {
		percent += a.PercentOfTotal
	}
	if math.Abs(percent-100) > 1e-9 {
		t.Errorf("sum of PercentOfTotal = %v, want 100", percent)
	}
}

func TestAllocate_RoundsToZero(t *testing.T) {
	b := newTestBook(t, []Partner{lp("a", 33), lp("b", 33), lp("c", 34)},
		contribution("a", "2024-01-01", 100),
		contribution("b", "2024-01-01", 100),
		contribution("c", "2024-01-01", 100),
	)
	allocs := allocate(t, b, "2024-01-01", 0.01, DefaultConfig())

	want := []PartnerDistribution{
		{PartnerID: "a"},
		{PartnerID: "b"},
		{PartnerID: "c", ReturnOfCapital: M(0.01), TotalDistribution: M(0.01), PercentOfTotal: 100},
	}
	if diff := cmp.Diff(want, allocs); diff != "" {
		t.Errorf("Allocate(0.01) mismatch (-want +got):\n%s", diff)
	}

	if _, err := b.Distribute(D("2024-01-01"), M(0.01), DefaultConfig(), ""); err != nil {
		t.Errorf("Distribute(0.01) error = %v", err)
	}
}

func TestAllocate_Idempotent(t *testing.T) {
	b := sponsorDeal(t)
	first := allocate(t, b, "2024-01-01", 123456.78, DefaultConfig())
	second := allocate(t, b, "2024-01-01", 123456.78, DefaultConfig())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Allocate() is not deterministic (-first +second):\n%s", diff)
	}
	if total := sumTotals(first); !total.Equal(M(123456.78)) {
		t.Errorf("sum of allocations = %v, want 123456.78", total)
	}
}

func TestAllocate_Zero(t *testing.T) {
	b := sponsorDeal(t)
	for _, a := range allocate(t, b, "2024-01-01", 0, DefaultConfig()) {
		if !a.TotalDistribution.IsZero() || a.PercentOfTotal != 0 {
			t.Errorf("allocation of %q = %v (%v%%), want 0", a.PartnerID, a.TotalDistribution, a.PercentOfTotal)
		}
	}
}

func TestAllocate_InactivePartner(t *testing.T) {
	inactive := lp("gone", 50)
	inactive.Status = Inactive
	b := newTestBook(t, []Partner{lp("lp", 50), inactive})
	allocs := allocate(t, b, "2024-01-01", 1000, noTiers())

	if len(allocs) != 1 || allocs[0].PartnerID != "lp" {
		t.Fatalf("Allocate() = %v, want a single allocation to lp", allocs)
	}
	if !allocs[0].TotalDistribution.Equal(M(1000)) {
		t.Errorf("TotalDistribution = %v, want 1000", allocs[0].TotalDistribution)
	}
}

func TestAllocate_Errors(t *testing.T) {
	partners := []Partner{gp("gp", 100)}
	capital := CapitalState{}
	accrual := AccrualState{}

	if _, err := Allocate(M(-1), D("2024-01-01"), partners, capital, accrual, DefaultConfig()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Allocate(-1) error = %v, want ErrInvalidInput", err)
	}

	exited := gp("gp", 100)
	exited.Status = Exited
	if _, err := Allocate(M(100), D("2024-01-01"), []Partner{exited}, capital, accrual, DefaultConfig()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Allocate(no active partner) error = %v, want ErrInvalidState", err)
	}

	cfg := DefaultConfig()
	cfg.SplitMode = "lottery"
	if _, err := Allocate(M(100), D("2024-01-01"), partners, capital, accrual, cfg); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Allocate(bad config) error = %v, want ErrInvalidInput", err)
	}
}

func TestTiers(t *testing.T) {
	b := sponsorDeal(t)
	cfg := DefaultConfig()
	cfg.CatchUp = false
	tiers := Tiers(allocate(t, b, "2024-01-01", 150000, cfg), cfg)

	want := []struct {
		tier    Tier
		amount  float64
		enabled bool
	}{
		{TierReturnOfCapital, 100000, true},
		{TierPreferredReturn, 8000, true},
		{TierCatchup, 0, false},
		{TierResidual, 42000, true},
	}
	if len(tiers) != len(want) {
		t.Fatalf("Tiers() returned %d tiers, want %d", len(tiers), len(want))
	}
	for i, w := range want {
		got := tiers[i]
		if got.Tier != w.tier || !got.Amount.Equal(M(w.amount)) || got.Enabled != w.enabled {
			t.Errorf("Tiers()[%d] = %v %v enabled=%v, want %v %v enabled=%v", i, got.Tier, got.Amount, got.Enabled, w.tier, w.amount, w.enabled)
		}
	}
}
