package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/sepandasadi/partnership/renderer"
)

type ledgerCmd struct {
	date string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "display the capital ledger of every partner" }
func (*ledgerCmd) Usage() string {
	return `wf ledger [-d <date>]

  Displays, for every partner, the capital contributed, the capital not yet
  returned and the preferred return accrued on a date.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the ledger (YYYY-MM-DD, defaults to today)")
}

func (c *ledgerCmd) report() (string, error) {
	on, err := parseDate(c.date)
	if err != nil {
		return "", err
	}
	book, err := loadBook()
	if err != nil {
		return "", err
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	s, err := book.NewSnapshot(on)
	if err != nil {
		return "", err
	}
	return renderer.LedgerMarkdown(s, cfg, renderer.Options{Currency: settings.Currency}), nil
}

func (c *ledgerCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	md, err := c.report()
	if err != nil {
		return fail("Error", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
