package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/etnz/folio/date"
	"github.com/etnz/folio/renderer"
)

// tickerCmd holds the ticker flag of the market commands.
type tickerCmd struct {
	ticker string
}

func (c *tickerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "s", "", "Ticker symbol")
}

// load downloads the price series of the ticker when missing.
func (c *tickerCmd) load(ctx context.Context, a *app) error {
	if err := required("s", c.ticker); err != nil {
		return err
	}
	return a.market.Ensure(ctx, c.ticker)
}

type gainCmd struct {
	tickerCmd
	from, to date.Date
}

func (*gainCmd) Name() string     { return "gain" }
func (*gainCmd) Synopsis() string { return "shows the price change of a ticker between two trading days" }
func (*gainCmd) Usage() string {
	return `stk gain -s <ticker> -from <date> -to <date>

  Shows the closing price on the last day minus the closing price on the first
  day. Both days must be trading days of the ticker.
`
}

func (c *gainCmd) SetFlags(f *flag.FlagSet) {
	today := date.Today()
	c.tickerCmd.SetFlags(f)
	f.TextVar(&c.from, "from", today.AddMonths(-1), "First trading day (YYYY-MM-DD)")
	f.TextVar(&c.to, "to", today, "Last trading day (YYYY-MM-DD)")
}

func (c *gainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := c.load(ctx, a); err != nil {
			return err
		}
		gain, err := a.market.GainOrLoss(c.ticker, c.from, c.to)
		if err != nil {
			return err
		}
		printMarkdown(renderer.GainMarkdown(c.ticker, c.from, c.to, gain, a.cfg.Currency))
		return nil
	})
}

type averageCmd struct {
	tickerCmd
	on     date.Date
	window int
}

func (*averageCmd) Name() string     { return "average" }
func (*averageCmd) Synopsis() string { return "shows the moving average of a ticker on a trading day" }
func (*averageCmd) Usage() string {
	return `stk average -s <ticker> -d <date> -x <days>

  Shows the average closing price of the last trading days up to and including
  the day.

Usage Examples:
$ stk average -s GOOG -d 2024-01-09 -x 20
`
}

func (c *averageCmd) SetFlags(f *flag.FlagSet) {
	c.tickerCmd.SetFlags(f)
	f.TextVar(&c.on, "d", date.Today(), "Trading day (YYYY-MM-DD)")
	f.IntVar(&c.window, "x", 20, "Number of trading days")
}

func (c *averageCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := c.load(ctx, a); err != nil {
			return err
		}
		avg, err := a.market.MovingAverage(c.ticker, c.on, c.window)
		if err != nil {
			return err
		}
		printMarkdown(renderer.MovingAverageMarkdown(c.ticker, c.on, c.window, avg, a.cfg.Currency))
		return nil
	})
}

type crossoverCmd struct {
	tickerCmd
	from, to date.Date
	window   int
}

func (*crossoverCmd) Name() string { return "crossover" }
func (*crossoverCmd) Synopsis() string {
	return "lists the trading days a ticker closed at or above its moving average"
}
func (*crossoverCmd) Usage() string {
	return `stk crossover -s <ticker> -from <date> -to <date> -x <days>

  Lists the trading days between two days where the closing price is at or
  above the moving average of the last trading days. Days without enough
  history are skipped.
`
}

func (c *crossoverCmd) SetFlags(f *flag.FlagSet) {
	today := date.Today()
	c.tickerCmd.SetFlags(f)
	f.TextVar(&c.from, "from", today.AddMonths(-1), "First day (YYYY-MM-DD)")
	f.TextVar(&c.to, "to", today, "Last day (YYYY-MM-DD)")
	f.IntVar(&c.window, "x", 20, "Number of trading days")
}

func (c *crossoverCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := c.load(ctx, a); err != nil {
			return err
		}
		days, err := a.market.Crossover(c.ticker, c.from, c.to, c.window)
		if err != nil {
			return err
		}
		printMarkdown(renderer.CrossoverMarkdown(c.ticker, c.from, c.to, c.window, days))
		return nil
	})
}
