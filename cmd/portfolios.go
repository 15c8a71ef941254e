package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/renderer"
)

type createCmd struct {
	name   string
	ticker string
	shares float64
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "creates a portfolio or adds shares to its initial composition" }
func (*createCmd) Usage() string {
	return `stk create -p <portfolio> -s <ticker> -q <shares>

  Adds shares of a ticker to the initial composition of a portfolio, creating
  the portfolio when it does not exist yet. Initial shares are held since the
  beginning of time, before any transaction.

Usage Examples:
$ stk create -p retirement -s GOOG -q 10
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "p", "", "Portfolio name")
	f.StringVar(&c.ticker, "s", "", "Ticker symbol")
	f.Float64Var(&c.shares, "q", 0, "Number of shares")
}

func (c *createCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := required("p", c.name, "s", c.ticker); err != nil {
			return err
		}
		p, err := a.registry.Create(c.name, c.ticker, c.shares)
		if err != nil {
			return err
		}
		if err := a.save(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✅ Added %v shares of %s to the initial composition of %s.\n", c.shares, c.ticker, p.Name())
		return nil
	})
}

// tradeCmd is the common implementation of buy and sell.
type tradeCmd struct {
	kind   folio.Kind
	name   string
	ticker string
	shares float64
	on     date.Date
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "p", "", "Portfolio name")
	f.StringVar(&c.ticker, "s", "", "Ticker symbol")
	f.Float64Var(&c.shares, "q", 0, "Number of shares")
	f.TextVar(&c.on, "d", date.Today(), "Transaction date (YYYY-MM-DD)")
}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := required("p", c.name, "s", c.ticker); err != nil {
			return err
		}
		trade := a.registry.Buy
		if c.kind == folio.Sell {
			trade = a.registry.Sell
		}
		p, err := trade(c.name, c.ticker, c.shares, c.on)
		if err != nil {
			return err
		}
		if err := a.save(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✅ Recorded %s of %v %s in %s on %s.\n", c.kind, c.shares, c.ticker, c.name, c.on)
		return nil
	})
}

type buyCmd struct{ tradeCmd }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "records a purchase of shares" }
func (*buyCmd) Usage() string {
	return `stk buy -p <portfolio> -s <ticker> -q <shares> [-d <date>]

  Records the purchase of shares on a trading day, today by default. The
  portfolio is created when it does not exist yet.

Usage Examples:
$ stk buy -p retirement -s AAPL -q 5 -d 2024-01-02
`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.kind = folio.Buy; c.tradeCmd.SetFlags(f) }

type sellCmd struct{ tradeCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "records a sale of shares" }
func (*sellCmd) Usage() string {
	return `stk sell -p <portfolio> -s <ticker> -q <shares> [-d <date>]

  Records the sale of shares on a trading day, today by default. Selling more
  shares than held is only reported when the composition is computed.

Usage Examples:
$ stk sell -p retirement -s AAPL -q 2 -d 2024-01-03
`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.kind = folio.Sell; c.tradeCmd.SetFlags(f) }

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "lists the portfolios" }
func (*listCmd) Usage() string {
	return `stk list

  Lists the names of every portfolio in the store.
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		printMarkdown(renderer.ListMarkdown(a.registry.Names()))
		return nil
	})
}

type showCmd struct {
	name string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "shows the initial composition and the transactions of a portfolio" }
func (*showCmd) Usage() string {
	return `stk show -p <portfolio>

  Shows the ledger of a portfolio: its initial composition then every
  transaction in the order it was recorded.
`
}
func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "p", "", "Portfolio name")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := required("p", c.name); err != nil {
			return err
		}
		p, err := a.registry.Portfolio(c.name)
		if err != nil {
			return err
		}
		printMarkdown(renderer.LedgerMarkdown(p))
		return nil
	})
}

type exportCmd struct {
	name   string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "writes a portfolio in the text format" }
func (*exportCmd) Usage() string {
	return `stk export -p <portfolio> [-o <file>]

  Writes the portfolio in the text format read by import, to stdout by default.

Usage Examples:
$ stk export -p retirement -o retirement.txt
`
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "p", "", "Portfolio name")
	f.StringVar(&c.output, "o", "", "Output file, stdout by default")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := required("p", c.name); err != nil {
			return err
		}
		p, err := a.registry.Portfolio(c.name)
		if err != nil {
			return err
		}
		if c.output == "" {
			return folio.EncodePortfolio(os.Stdout, p)
		}
		out, err := os.Create(c.output)
		if err != nil {
			return err
		}
		if err := folio.EncodePortfolio(out, p); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "reads a portfolio in the text format" }
func (*importCmd) Usage() string {
	return `stk import -i <file>

  Reads a portfolio written by export and saves it in the store, replacing any
  portfolio with the same name.
`
}
func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input file")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := required("i", c.input); err != nil {
			return err
		}
		in, err := os.Open(c.input)
		if err != nil {
			return err
		}
		defer in.Close()
		p, err := folio.DecodePortfolio(in)
		if err != nil {
			return fmt.Errorf("reading %q: %w", c.input, err)
		}
		// check that the ledger replays before saving it
		if _, err := p.CompositionAt(date.Today()); err != nil {
			return err
		}
		if err := a.save(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✅ Imported %s with %d transactions.\n", p.Name(), p.Len())
		return nil
	})
}
