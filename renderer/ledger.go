package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/sepandasadi/partnership"
)

// LedgerMarkdown renders the capital ledger of every partner.
func LedgerMarkdown(s *partnership.Snapshot, cfg partnership.WaterfallConfig, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Capital Ledger on %s", s.On()))

	capital := s.Capital()
	accrual := s.Accrual(cfg)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Partner", "Role", "Ownership", "Contributed", "Unreturned", "Accrued Preferred", "Distributed"},
		Rows:   [][]string{},
	}
	var contributed, unreturned, accrued, distributed partnership.Money
	for _, p := range s.Partners() {
		c, u, a, d := capital.Contributed[p.ID], capital.Unreturned[p.ID], accrual[p.ID], capital.Distributed[p.ID].Total()
		contributed, unreturned = contributed.Add(c), unreturned.Add(u)
		accrued, distributed = accrued.Add(a), distributed.Add(d)

		name := p.Name
		if p.Status != partnership.Active {
			name = fmt.Sprintf("%s (%s)", p.Name, p.Status)
		}
		table.Rows = append(table.Rows, []string{
			name,
			roleLabel(p.Role),
			partnership.WholePercent(p.OwnershipPercent).String(),
			opts.money(c),
			opts.money(u),
			opts.money(a),
			opts.money(d),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"), "", "",
		md.Bold(opts.money(contributed)),
		md.Bold(opts.money(unreturned)),
		md.Bold(opts.money(accrued)),
		md.Bold(opts.money(distributed)),
	})
	doc.Table(table)

	if cfg.PreferredReturn {
		doc.PlainText(fmt.Sprintf("Preferred return accrues at %s a year (%s).", partnership.Percent(cfg.PreferredRate), cfg.Accrual))
	}
	return doc.String()
}

func roleLabel(r partnership.Role) string {
	switch r {
	case partnership.GeneralPartner:
		return "GP"
	case partnership.LimitedPartner:
		return "LP"
	default:
		return string(r)
	}
}
