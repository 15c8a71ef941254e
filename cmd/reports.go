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

// reportCmd holds the flags shared by the reports on one portfolio and one day.
type reportCmd struct {
	name string
	on   date.Date
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "p", "", "Portfolio name")
	f.TextVar(&c.on, "d", date.Today(), "Report date (YYYY-MM-DD)")
}

// portfolio returns the portfolio named by -p.
func (c *reportCmd) portfolio(a *app) (*folio.Portfolio, error) {
	if err := required("p", c.name); err != nil {
		return nil, err
	}
	return a.registry.Portfolio(c.name)
}

type compositionCmd struct{ reportCmd }

func (*compositionCmd) Name() string     { return "composition" }
func (*compositionCmd) Synopsis() string { return "shows the shares held on a day" }
func (*compositionCmd) Usage() string {
	return `stk composition -p <portfolio> [-d <date>]

  Replays the ledger up to the end of the day, today by default, and shows the
  shares held for every ticker.
`
}

func (c *compositionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		p, err := c.portfolio(a)
		if err != nil {
			return err
		}
		comp, err := p.CompositionAt(c.on)
		if err != nil {
			return err
		}
		printMarkdown(renderer.CompositionMarkdown(p.Name(), c.on, comp))
		return nil
	})
}

type valueCmd struct{ reportCmd }

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "shows the value of a portfolio on a day" }
func (*valueCmd) Usage() string {
	return `stk value -p <portfolio> [-d <date>]

  Values the shares held at the end of the day with the closing prices,
  downloading missing price series first.
`
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		p, err := c.portfolio(a)
		if err != nil {
			return err
		}
		v, err := a.valuer(ctx, p)
		if err != nil {
			return err
		}
		value, err := v.Value(p, c.on)
		if err != nil {
			return err
		}
		printMarkdown(renderer.ValueMarkdown(p.Name(), c.on, value, a.cfg.Currency))
		return nil
	})
}

type distributionCmd struct{ reportCmd }

func (*distributionCmd) Name() string     { return "distribution" }
func (*distributionCmd) Synopsis() string { return "shows the value of every position on a day" }
func (*distributionCmd) Usage() string {
	return `stk distribution -p <portfolio> [-d <date>]

  Shows the value of every position held at the end of the day and its share
  of the total value.
`
}

func (c *distributionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		p, err := c.portfolio(a)
		if err != nil {
			return err
		}
		v, err := a.valuer(ctx, p)
		if err != nil {
			return err
		}
		dist, err := v.Distribution(p, c.on)
		if err != nil {
			return err
		}
		printMarkdown(renderer.DistributionMarkdown(renderer.NewDistribution(p.Name(), c.on, dist, a.cfg.Currency)))
		return nil
	})
}

type rebalanceCmd struct {
	reportCmd
	weights string
	dryRun  bool
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "trades shares to reach target weights" }
func (*rebalanceCmd) Usage() string {
	return `stk rebalance -p <portfolio> -w <weights> [-d <date>] [-n]

  Computes the buys and sells that bring the value of each ticker to its target
  share of the total value, at the closing prices of the day, and records them.
  Weights must add up to 1. Tickers held but not listed are left untouched.

Usage Examples:
# Shows the trades without recording them.
$ stk rebalance -p retirement -w GOOG=0.5,AAPL=0.5 -d 2024-01-05 -n
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	c.reportCmd.SetFlags(f)
	f.StringVar(&c.weights, "w", "", "Target weights, like GOOG=0.5,AAPL=0.5")
	f.BoolVar(&c.dryRun, "n", false, "Only show the trades, do not record them")
}

func (c *rebalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := required("w", c.weights); err != nil {
			return err
		}
		weights, err := folio.ParseWeights(c.weights)
		if err != nil {
			return err
		}
		p, err := c.portfolio(a)
		if err != nil {
			return err
		}
		// targets may name tickers that are not held yet
		if err := a.market.Ensure(ctx, weights.Tickers()...); err != nil {
			return err
		}
		v, err := a.valuer(ctx, p)
		if err != nil {
			return err
		}
		if c.dryRun {
			plan, err := v.PlanRebalance(p, c.on, weights)
			if err != nil {
				return err
			}
			printMarkdown(renderer.RebalanceMarkdown(plan, false, a.cfg.Currency))
			return nil
		}
		plan, err := v.Rebalance(p, c.on, weights)
		if err != nil {
			return err
		}
		if len(plan.Actions) > 0 {
			if err := a.save(ctx, p); err != nil {
				return err
			}
		}
		printMarkdown(renderer.RebalanceMarkdown(plan, true, a.cfg.Currency))
		return nil
	})
}

type performanceCmd struct {
	name     string
	from, to date.Date
	interval string
	png      string
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "charts the value of a portfolio over time" }
func (*performanceCmd) Usage() string {
	return `stk performance -p <portfolio> [-from <date>] [-to <date>] [-i daily|monthly|yearly] [-png <file>]

  Values the portfolio at regular intervals between two days, the last year by
  default, and charts the values. With -png the chart is also written as an
  image.

Usage Examples:
$ stk performance -p retirement -from 2024-01-01 -to 2024-12-31 -i monthly -png retirement.png
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	today := date.Today()
	f.StringVar(&c.name, "p", "", "Portfolio name")
	f.TextVar(&c.from, "from", today.AddYears(-1), "First day (YYYY-MM-DD)")
	f.TextVar(&c.to, "to", today, "Last day (YYYY-MM-DD)")
	f.StringVar(&c.interval, "i", "monthly", "Interval between samples: daily, monthly or yearly")
	f.StringVar(&c.png, "png", "", "Also write the chart as a PNG image to this file")
}

func (c *performanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		if err := required("p", c.name); err != nil {
			return err
		}
		period, err := date.ParsePeriod(c.interval)
		if err != nil {
			return err
		}
		p, err := a.registry.Portfolio(c.name)
		if err != nil {
			return err
		}
		v, err := a.valuer(ctx, p)
		if err != nil {
			return err
		}
		samples, err := v.Sample(p, c.from, c.to, period)
		if err != nil {
			return err
		}
		printMarkdown(renderer.PerformanceMarkdown(p.Name(), samples, a.cfg.Currency))
		if c.png == "" {
			return nil
		}
		img, err := renderer.PerformanceChart(p.Name(), samples, a.cfg.Currency)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.png, img, 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✅ Chart written to %s.\n", c.png)
		return nil
	})
}
