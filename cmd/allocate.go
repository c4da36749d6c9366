package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sepandasadi/partnership"
	"github.com/sepandasadi/partnership/renderer"
)

type allocateCmd struct {
	amount string
	date   string
	notes  string
	commit bool
	json   bool
}

func (*allocateCmd) Name() string     { return "allocate" }
func (*allocateCmd) Synopsis() string { return "run the distribution waterfall on an amount" }
func (*allocateCmd) Usage() string {
	return `wf allocate -amount <amount> [-d <date>] [-commit [-notes <notes>]] [-json]

  Splits the amount among active partners through the waterfall tiers and
  displays the allocation of every partner, tier by tier.

  The distribution is only projected unless -commit is set, in which case it
  is appended to the book.
`
}

func (c *allocateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount to distribute")
	f.StringVar(&c.date, "d", "", "Date of the distribution (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.notes, "notes", "", "Notes recorded with a committed distribution")
	f.BoolVar(&c.commit, "commit", false, "Record the distribution in the book")
	f.BoolVar(&c.json, "json", false, "Print the distribution as JSON")
}

// distribute runs the waterfall and records the distribution when committing.
func (c *allocateCmd) distribute() (partnership.Distribution, *partnership.Book, partnership.WaterfallConfig, error) {
	var cfg partnership.WaterfallConfig
	if c.amount == "" {
		return partnership.Distribution{}, nil, cfg, fmt.Errorf("%w: -amount is required", partnership.ErrInvalidInput)
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		return partnership.Distribution{}, nil, cfg, err
	}
	on, err := parseDate(c.date)
	if err != nil {
		return partnership.Distribution{}, nil, cfg, err
	}
	book, err := loadBook()
	if err != nil {
		return partnership.Distribution{}, nil, cfg, err
	}
	if cfg, err = loadConfig(); err != nil {
		return partnership.Distribution{}, nil, cfg, err
	}

	if !c.commit {
		d, err := book.Project(on, amount, cfg)
		return d, book, cfg, err
	}
	d, err := book.Distribute(on, amount, cfg, c.notes)
	if err != nil {
		return d, book, cfg, err
	}
	if err := partnership.AppendRecord(settings.BookFile, partnership.CmdDistribute, d); err != nil {
		return d, book, cfg, err
	}
	return d, book, cfg, nil
}

func (c *allocateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, book, cfg, err := c.distribute()
	if err != nil {
		return fail("Error", err)
	}
	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fail("Error encoding distribution", err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.AllocationMarkdown(d, book.Partners(), cfg, renderer.Options{Currency: settings.Currency}))
	if c.commit {
		fmt.Fprintf(os.Stderr, "Distribution %s appended to %s\n", d.ID, settings.BookFile)
	}
	return subcommands.ExitSuccess
}
