// Package renderer turns partnership reports into markdown documents.
package renderer

import (
	"fmt"

	"github.com/sepandasadi/partnership"
)

// Options holds configuration common to every report.
type Options struct {
	Currency string // ISO code used to format amounts, e.g. "USD".
}

func (o Options) currency() string {
	if o.Currency == "" {
		return "USD"
	}
	return o.Currency
}

// money formats an amount, or "-" for zero.
func (o Options) money(m partnership.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.Format(o.currency())
}

func percent(v float64) string { return partnership.Percent(v).String() }

func multiple(v float64) string { return fmt.Sprintf("%.2fx", v) }

// partnerName returns the partner's name, or its id when it has none.
func partnerName(p partnership.Partner, ok bool, id string) string {
	if !ok || p.Name == "" {
		return id
	}
	return p.Name
}
