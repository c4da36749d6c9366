package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type validateCmd struct {
	strict bool
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check the records of the book" }
func (*validateCmd) Usage() string {
	return `wf validate [-strict]

  Checks every record of the book and the waterfall config. With -strict,
  also checks that active partners' ownership sums to 100%.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Also check that active ownership sums to 100%")
}

func (c *validateCmd) validate() error {
	book, err := loadBook()
	if err != nil {
		return err
	}
	if _, err := loadConfig(); err != nil {
		return err
	}
	return book.Validate(c.strict)
}

func (c *validateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.validate(); err != nil {
		return fail("Invalid book", err)
	}
	fmt.Printf("%s is valid\n", settings.BookFile)
	return subcommands.ExitSuccess
}
