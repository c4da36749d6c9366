package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
	"github.com/sepandasadi/partnership"
	"github.com/sepandasadi/partnership/renderer"
)

type performanceCmd struct {
	date  string
	json  bool
	query string
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "display the performance of every partner" }
func (*performanceCmd) Usage() string {
	return `wf performance [-d <date>] [-json | -select <jsonpath>]

  Displays contributions, distributions, equity, ROI, MOIC, IRR, cash-on-cash
  and annualized return of every partner on a date.

  -select runs a JSONPath query on the JSON output, e.g. '$[*].irr'.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the performance (YYYY-MM-DD, defaults to today)")
	f.BoolVar(&c.json, "json", false, "Print the performance as JSON")
	f.StringVar(&c.query, "select", "", "JSONPath query on the JSON output")
}

func (c *performanceCmd) performances(ctx context.Context) ([]partnership.PartnerPerformance, error) {
	on, err := parseDate(c.date)
	if err != nil {
		return nil, err
	}
	book, err := loadBook()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s, err := book.NewSnapshot(on)
	if err != nil {
		return nil, err
	}
	return s.Performances(ctx, book.CashFlows(on), cfg)
}

// report returns the performance as JSON, markdown otherwise.
func (c *performanceCmd) report(ctx context.Context) (out string, isJSON bool, err error) {
	perfs, err := c.performances(ctx)
	if err != nil {
		return "", false, err
	}
	if !c.json && c.query == "" {
		return renderer.PerformanceMarkdown(perfs, renderer.Options{Currency: settings.Currency}), false, nil
	}

	data, err := json.Marshal(perfs)
	if err != nil {
		return "", true, err
	}
	var v any = json.RawMessage(data)
	if c.query != "" {
		var jobj any
		if err := json.Unmarshal(data, &jobj); err != nil {
			return "", true, err
		}
		if v, err = jsonpath.Get(c.query, jobj); err != nil {
			return "", true, fmt.Errorf("invalid query %q: %w", c.query, err)
		}
	}
	indented, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", true, err
	}
	return string(indented) + "\n", true, nil
}

func (c *performanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out, isJSON, err := c.report(ctx)
	if err != nil {
		return fail("Error", err)
	}
	if isJSON {
		fmt.Print(out)
	} else {
		printMarkdown(out)
	}
	return subcommands.ExitSuccess
}
