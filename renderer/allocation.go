package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/sepandasadi/partnership"
)

// AllocationMarkdown renders a distribution with its waterfall tiers and per-partner breakdown.
func AllocationMarkdown(d partnership.Distribution, partners []partnership.Partner, cfg partnership.WaterfallConfig, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Distribution"
	if d.Projected {
		title = "Projected Distribution"
	}
	doc.H1(fmt.Sprintf("%s on %s", title, d.Date))
	doc.PlainText(fmt.Sprintf("Total Amount: %s", d.TotalAmount.Format(opts.currency())))
	if d.Notes != "" {
		doc.PlainText(md.Italic(d.Notes))
	}

	doc.H2("Waterfall Tiers")
	tiers := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Tier", "Name", "Amount", "Description"},
		Rows:      [][]string{},
	}
	for _, t := range partnership.Tiers(d.Allocations, cfg) {
		description := t.Description
		if !t.Enabled {
			description = "disabled"
		}
		tiers.Rows = append(tiers.Rows, []string{
			fmt.Sprintf("%d", t.Tier),
			t.Name,
			opts.money(t.Amount),
			description,
		})
	}
	doc.Table(tiers)

	names := make(map[string]partnership.Partner, len(partners))
	for _, p := range partners {
		names[p.ID] = p
	}

	doc.H2("Allocations")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Partner", "Return of Capital", "Preferred", "Catch-up", "Residual", "Total", "% of Total"},
		Rows:   [][]string{},
	}
	for _, a := range d.Allocations {
		p, ok := names[a.PartnerID]
		table.Rows = append(table.Rows, []string{
			partnerName(p, ok, a.PartnerID),
			opts.money(a.ReturnOfCapital),
			opts.money(a.PreferredReturn),
			opts.money(a.Catchup),
			opts.money(a.RemainingProfit),
			md.Bold(a.TotalDistribution.Format(opts.currency())),
			partnership.WholePercent(a.PercentOfTotal).String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
