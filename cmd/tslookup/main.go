// Command tslookup inspects Qt Linguist catalogs: it translates single
// messages, lists contexts, prints statistics and re-serializes
// catalogs.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/snapcore/go-linguist"
	"github.com/snapcore/go-linguist/config"
)

var (
	Stdout io.Writer = os.Stdout
	Stderr *os.File  = os.Stderr
)

type options struct {
	Config string `short:"c" long:"config" value-name:"FILE" description:"read configuration from FILE"`

	Dir string `short:"d" long:"dir" value-name:"DIR" description:"look for catalogs in DIR"`

	Domain string `long:"domain" value-name:"NAME" description:"catalog file name prefix"`

	Languages []string `short:"l" long:"lang" value-name:"LOCALE" description:"use LOCALE, most preferred first (may be repeated)"`

	Strict bool `long:"strict" description:"log missing translations"`

	Lookup   lookupCommand   `command:"lookup" description:"translate a message"`
	Contexts contextsCommand `command:"contexts" description:"list the contexts of the selected catalogs"`
	Stats    statsCommand    `command:"stats" description:"print message counts of the selected catalogs"`
	Dump     dumpCommand     `command:"dump" description:"write a catalog file to stdout in .ts format"`
	Match    matchCommand    `command:"match" description:"print the available locale best matching the preferences"`
}

var opts options

var errNoTranslation = errors.New("no translation")

// setup loads the configuration, applies the global options and returns
// the resulting text domain and language preferences.
func setup() (*linguist.TextDomain, []string, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, nil, err
	}
	if opts.Dir != "" {
		cfg.Catalog.Dir = opts.Dir
	}
	if opts.Domain != "" {
		cfg.Catalog.Domain = opts.Domain
	}
	if len(opts.Languages) > 0 {
		cfg.Catalog.Languages = opts.Languages
	}
	if opts.Strict {
		cfg.Catalog.StrictMissingKeys = true
	}
	config.SetupLogging(cfg, Stderr)

	languages := cfg.Catalog.Languages
	if len(languages) == 0 {
		languages = linguist.UserLanguages()
	}
	return cfg.TextDomain(nil), languages, nil
}

func translator() (*linguist.Translator, error) {
	domain, languages, err := setup()
	if err != nil {
		return nil, err
	}
	tr := domain.Locale(languages...)
	if len(tr.Catalogs()) == 0 {
		return nil, fmt.Errorf("%w: %v", linguist.ErrLocaleNotFound, languages)
	}
	return tr, nil
}

type lookupCommand struct {
	Comment  string   `long:"comment" value-name:"TEXT" description:"disambiguation comment of the message"`
	N        int      `short:"n" long:"count" default:"-1" value-name:"N" description:"count selecting the plural form"`
	Args     []string `short:"a" long:"arg" value-name:"VALUE" description:"value for the next %1..%99 marker (may be repeated)"`
	Fallback bool     `long:"fallback" description:"print the source text when there is no translation"`

	Positional struct {
		Context string `positional-arg-name:"CONTEXT"`
		Source  string `positional-arg-name:"SOURCE"`
	} `positional-args:"yes" required:"yes"`
}

func (cmd *lookupCommand) Execute([]string) error {
	tr, err := translator()
	if err != nil {
		return err
	}
	context, source := cmd.Positional.Context, cmd.Positional.Source

	var text string
	if cmd.Fallback {
		text = tr.Translate(context, source, cmd.Comment, cmd.N)
	} else if text, err = tr.Lookup(context, source, cmd.Comment, cmd.N); err != nil && !errors.Is(err, linguist.ErrPluralFormMismatch) {
		return fmt.Errorf("%w: %w", errNoTranslation, err)
	}
	if cmd.N >= 0 {
		text = linguist.ArgN(text, cmd.N)
	}
	fmt.Fprintln(Stdout, linguist.Arg(text, cmd.Args...))
	return nil
}

type contextsCommand struct{}

func (cmd *contextsCommand) Execute([]string) error {
	tr, err := translator()
	if err != nil {
		return err
	}
	for _, catalog := range tr.Catalogs() {
		for _, ctx := range catalog.Contexts {
			fmt.Fprintf(Stdout, "%s\t%s\t%d\n", catalog.Language, ctx.Name, len(ctx.Messages))
		}
	}
	return nil
}

type statsCommand struct{}

func (cmd *statsCommand) Execute([]string) error {
	tr, err := translator()
	if err != nil {
		return err
	}
	for _, catalog := range tr.Catalogs() {
		s := catalog.Stats()
		fmt.Fprintf(Stdout, "%s: %d contexts, %d messages (%d finished, %d unfinished, %d obsolete), %d numerus, %d untranslated\n",
			catalog.Language, s.Contexts, s.Messages, s.Finished, s.Unfinished, s.Obsolete, s.Numerus, s.Untranslated)
		if s.FormMismatch > 0 {
			fmt.Fprintf(Stdout, "%s: %d numerus messages do not have %d plural forms\n",
				catalog.Language, s.FormMismatch, catalog.PluralRule().Forms)
		}
	}
	return nil
}

type dumpCommand struct {
	Positional struct {
		File string `positional-arg-name:"FILE"`
	} `positional-args:"yes" required:"yes"`
}

func (cmd *dumpCommand) Execute([]string) error {
	catalog, err := linguist.ReadFile(cmd.Positional.File)
	if err != nil {
		return err
	}
	_, err = catalog.WriteTo(Stdout)
	return err
}

type matchCommand struct {
	Positional struct {
		Preferences []string `positional-arg-name:"PREFERENCE"`
	} `positional-args:"yes" required:"yes"`
}

func (cmd *matchCommand) Execute([]string) error {
	domain, _, err := setup()
	if err != nil {
		return err
	}
	locale, err := domain.Match(cmd.Positional.Preferences...)
	if err != nil {
		return err
	}
	fmt.Fprintln(Stdout, locale)
	return nil
}

func run(args []string) error {
	opts = options{}
	parser := flags.NewParser(&opts, flags.Default)
	_, err := parser.ParseArgs(args)
	return err
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
