package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/sepandasadi/partnership"
	"github.com/sepandasadi/partnership/renderer"
)

type irrCmd struct {
	partner string
	date    string
	guess   float64
}

func (*irrCmd) Name() string     { return "irr" }
func (*irrCmd) Synopsis() string { return "display the cash flows and IRR of a partner" }
func (*irrCmd) Usage() string {
	return `wf irr -p <partner> [-d <date>] [-guess <rate>]

  Lists the cash flows of a partner up to a date and solves their internal
  rate of return.
`
}

func (c *irrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.partner, "p", "", "Partner id")
	f.StringVar(&c.date, "d", "", "Last date of the cash flows (YYYY-MM-DD, defaults to today)")
	f.Float64Var(&c.guess, "guess", 0, "Seed rate of the solver, 0.1 by default")
}

func (c *irrCmd) report() (string, error) {
	if c.partner == "" {
		return "", fmt.Errorf("%w: -p is required", partnership.ErrInvalidInput)
	}
	on, err := parseDate(c.date)
	if err != nil {
		return "", err
	}
	book, err := loadBook()
	if err != nil {
		return "", err
	}
	p, ok := book.Partner(c.partner)
	if !ok {
		return "", fmt.Errorf("%w: unknown partner %q", partnership.ErrInvalidState, c.partner)
	}

	entries := book.CashFlows(on)
	var flows []partnership.CashFlow
	for _, e := range entries {
		if e.PartnerID == p.ID {
			flows = append(flows, partnership.CashFlow{Date: e.Date, Amount: e.Amount.Float()})
		}
	}
	rate, err := partnership.IRRSolver{Guess: c.guess}.Solve(flows)
	return renderer.CashFlowsMarkdown(p, entries, rate, err, renderer.Options{Currency: settings.Currency}), nil
}

func (c *irrCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	md, err := c.report()
	if err != nil {
		return fail("Error", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
