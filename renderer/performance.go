package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/sepandasadi/partnership"
)

// PerformanceMarkdown renders the performance dashboard of a set of partners.
func PerformanceMarkdown(perfs []partnership.PartnerPerformance, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if len(perfs) == 0 {
		doc.H1("Partner Performance")
		doc.PlainText("No partner.")
		return doc.String()
	}
	doc.H1(fmt.Sprintf("Partner Performance on %s", perfs[0].On))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Partner", "Contributed", "Distributed", "Equity", "ROI", "MOIC", "IRR", "Cash-on-Cash", "Months", "Annualized"},
		Rows:   [][]string{},
	}
	var notes []string
	for _, p := range perfs {
		irr := "n/a"
		if p.HasIRR() {
			irr = percent(p.IRR)
		} else {
			notes = append(notes, fmt.Sprintf("%s: %v", p.Name, p.IRRErr))
		}
		table.Rows = append(table.Rows, []string{
			p.Name,
			opts.money(p.TotalContributions),
			opts.money(p.TotalDistributions),
			opts.money(p.CurrentEquity),
			percent(p.ROI),
			multiple(p.MOIC),
			irr,
			percent(p.CashOnCashReturn),
			fmt.Sprintf("%.1f", p.HoldingPeriodMonths),
			percent(p.AnnualizedReturn),
		})
	}
	doc.Table(table)

	if len(notes) > 0 {
		doc.H2("IRR not available")
		doc.BulletList(notes...)
	}
	return doc.String()
}

// CashFlowsMarkdown renders a partner's cash flows and the IRR they yield.
func CashFlowsMarkdown(p partnership.Partner, flows []partnership.CashFlowEntry, irr float64, irrErr error, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Cash Flows of %s", p.Name))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Date", "Amount", "Description"},
		Rows:      [][]string{},
	}
	var net partnership.Money
	for _, f := range flows {
		if f.PartnerID != p.ID {
			continue
		}
		net = net.Add(f.Amount)
		table.Rows = append(table.Rows, []string{f.Date.String(), f.Amount.Format(opts.currency()), f.Description})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Net"), md.Bold(net.Format(opts.currency())), ""})
	doc.Table(table)

	if irrErr != nil {
		doc.PlainText(fmt.Sprintf("IRR: n/a (%v)", irrErr))
	} else {
		doc.PlainText(fmt.Sprintf("IRR: %s", percent(irr)))
	}
	return doc.String()
}
