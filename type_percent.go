package partnership

import "fmt"

// Percent is a fraction of one, 0.08 for 8%.
//
// Waterfall rates (PreferredRate, GPPromotePercent) and performance metrics
// are fractions, while OwnershipPercent and PercentOfTotal are whole numbers
// between 0 and 100: use WholePercent to display the latter.
type Percent float64

// WholePercent converts a whole-number percentage, 10 for 10%, to a Percent.
func WholePercent(v float64) Percent { return Percent(v / 100) }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", 100*p)
}
