// Package cmd implements the wf subcommands.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/sepandasadi/partnership"
	"github.com/sepandasadi/partnership/date"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Settings are the global options of wf, read from the environment and
// overridable by global flags.
type Settings struct {
	BookFile   string `env:"WF_BOOK_FILE" envDefault:"partnership.jsonl"`
	ConfigFile string `env:"WF_CONFIG_FILE" envDefault:"waterfall.yaml"`
	Currency   string `env:"WF_CURRENCY" envDefault:"USD"`
	Verbose    bool   `env:"WF_VERBOSE"`
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
var settings Settings

// Commands lists every wf subcommand.
var Commands = []subcommands.Command{
	&ledgerCmd{},
	&allocateCmd{},
	&performanceCmd{},
	&irrCmd{},
	&validateCmd{},
	&topicCmd{},
}

// Init reads the settings from the environment and registers the global flags.
func Init(f *flag.FlagSet) error {
	s, err := env.ParseAs[Settings]()
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	settings = s
	f.StringVar(&settings.BookFile, "book", settings.BookFile, "Path to the partnership book (JSONL format)")
	f.StringVar(&settings.ConfigFile, "config", settings.ConfigFile, "Path to the waterfall config (YAML format)")
	f.StringVar(&settings.Currency, "currency", settings.Currency, "ISO code of the partnership currency, for display")
	f.BoolVar(&settings.Verbose, "v", settings.Verbose, "Log engine details to stderr")
	return nil
}

// SetupLogging configures the logger once flags are parsed.
func SetupLogging() {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if settings.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	partnership.SetLogger(log)
}

// loadBook decodes the book file.
func loadBook() (*partnership.Book, error) {
	return partnership.LoadBook(settings.BookFile)
}

// loadConfig decodes the waterfall config file.
func loadConfig() (partnership.WaterfallConfig, error) {
	return partnership.LoadConfig(settings.ConfigFile)
}

// parseDate parses a date flag, an empty value is today.
func parseDate(s string) (date.Date, error) {
	if strings.TrimSpace(s) == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// parseAmount parses an amount flag.
func parseAmount(s string) (partnership.Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return partnership.Money{}, fmt.Errorf("%w: invalid amount %q: %w", partnership.ErrInvalidInput, s, err)
	}
	return partnership.M(d), nil
}

// printMarkdown renders markdown for the terminal, or prints it raw if rendering fails.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

// fail reports an error on stderr and returns the failure status.
func fail(format string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+": %v\n", err)
	return subcommands.ExitFailure
}
