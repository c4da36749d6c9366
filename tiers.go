package partnership

import "fmt"

// Tier identifies a step of the distribution waterfall. Tiers always apply in order.
type Tier int

const (
	TierReturnOfCapital Tier = iota + 1
	TierPreferredReturn
	TierCatchup
	TierResidual
)

var allTiers = []Tier{TierReturnOfCapital, TierPreferredReturn, TierCatchup, TierResidual}

func (t Tier) String() string {
	switch t {
	case TierReturnOfCapital:
		return "Return of Capital"
	case TierPreferredReturn:
		return "Preferred Return"
	case TierCatchup:
		return "GP Catch-up"
	case TierResidual:
		return "Remaining Profit"
	default:
		return fmt.Sprintf("Tier %d", int(t))
	}
}

// Enabled reports whether the tier allocates under this config. The residual tier is always enabled.
func (t Tier) Enabled(cfg WaterfallConfig) bool {
	switch t {
	case TierReturnOfCapital:
		return cfg.ReturnOfCapital
	case TierPreferredReturn:
		return cfg.PreferredReturn
	case TierCatchup:
		return cfg.CatchUp
	default:
		return true
	}
}

// Description explains what the tier does under this config.
func (t Tier) Description(cfg WaterfallConfig) string {
	switch t {
	case TierReturnOfCapital:
		return "Unreturned capital paid back pro-rata to each partner's balance"
	case TierPreferredReturn:
		return fmt.Sprintf("%s annual preferred return on unreturned capital", Percent(cfg.PreferredRate))
	case TierCatchup:
		return fmt.Sprintf("General partners catch up to %s of cumulative profit", Percent(cfg.GPPromotePercent))
	default:
		if cfg.SplitMode == SplitByPromote {
			return fmt.Sprintf("%s to general partners, the rest by ownership", Percent(cfg.GPPromotePercent))
		}
		return "Split by ownership percentage"
	}
}

// WaterfallTier is the total allocated by one tier of a distribution.
type WaterfallTier struct {
	Tier        Tier   `json:"tier"`
	Name        string `json:"name"`
	Amount      Money  `json:"amount"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// Tiers summarizes allocations tier by tier, in waterfall order.
func Tiers(allocations []PartnerDistribution, cfg WaterfallConfig) []WaterfallTier {
	res := make([]WaterfallTier, 0, len(allTiers))
	for _, t := range allTiers {
		var amount Money
		for _, a := range allocations {
			amount = amount.Add(a.amount(t))
		}
		res = append(res, WaterfallTier{
			Tier:        t,
			Name:        t.String(),
			Amount:      amount,
			Description: t.Description(cfg),
			Enabled:     t.Enabled(cfg),
		})
	}
	return res
}
