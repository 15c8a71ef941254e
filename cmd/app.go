// Package cmd implements the stk command line application to manage stock portfolios.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/phuslu/log"

	"github.com/etnz/folio"
	"github.com/etnz/folio/alphavantage"
	"github.com/etnz/folio/store"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "portfolios")
	c.Register(&buyCmd{}, "portfolios")
	c.Register(&sellCmd{}, "portfolios")
	c.Register(&listCmd{}, "portfolios")
	c.Register(&showCmd{}, "portfolios")
	c.Register(&exportCmd{}, "portfolios")
	c.Register(&importCmd{}, "portfolios")

	c.Register(&compositionCmd{}, "reports")
	c.Register(&valueCmd{}, "reports")
	c.Register(&distributionCmd{}, "reports")
	c.Register(&rebalanceCmd{}, "reports")
	c.Register(&performanceCmd{}, "reports")

	c.Register(&gainCmd{}, "market")
	c.Register(&averageCmd{}, "market")
	c.Register(&crossoverCmd{}, "market")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to the configuration file, defaults to $STK_CONFIG or stk.yaml")
	storeKind  = flag.String("store", "", "Overrides store.kind: dir or sqlite")
	storePath  = flag.String("store-path", "", "Overrides store.path")
	raw        = flag.Bool("raw", false, "Print plain markdown instead of rendering it for the terminal")
	verbose    = flag.Bool("v", false, "Log debug messages")
)

// configPath returns the configuration file to read.
func configPath() string {
	if *configFile != "" {
		return *configFile
	}
	if env := os.Getenv(ConfigEnv); env != "" {
		return env
	}
	return DefaultConfigFile
}

// app holds everything a command needs, opened once per process.
type app struct {
	cfg      *Config
	logger   *log.Logger
	store    store.Store
	registry *folio.Registry
	market   *folio.Market
}

// openApp loads the configuration, opens the store and loads every portfolio.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := LoadConfig(configPath())
	if err != nil {
		return nil, err
	}
	if *storeKind != "" {
		cfg.Store.Kind = *storeKind
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Log.Level)

	calendar, err := cfg.Holidays()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(cfg.Store.Kind, cfg.Store.Path, logger)
	if err != nil {
		return nil, err
	}
	registry, err := store.LoadRegistry(ctx, s, &folio.Validator{Calendar: calendar})
	if err != nil {
		s.Close()
		return nil, err
	}
	client := alphavantage.NewClient(cfg.APIKey(),
		alphavantage.WithBaseURL(cfg.Prices.BaseURL),
		alphavantage.WithCacheDir(cfg.Prices.Cache),
		alphavantage.WithMaxAge(cfg.Prices.MaxAge),
		alphavantage.WithRateLimit(cfg.Prices.RequestsPerMinute),
		alphavantage.WithLogger(logger),
	)
	logger.Debug().Str("store", cfg.Store.Kind).Str("path", cfg.Store.Path).Int("portfolios", registry.Len()).Msg("opened")
	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    s,
		registry: registry,
		market:   folio.NewMarket(client),
	}, nil
}

func (a *app) Close() error { return a.store.Close() }

// save writes a modified portfolio back to the store.
func (a *app) save(ctx context.Context, p *folio.Portfolio) error {
	if err := a.store.Save(ctx, p); err != nil {
		return fmt.Errorf("saving portfolio %q: %w", p.Name(), err)
	}
	a.logger.Info().Str("portfolio", p.Name()).Int("transactions", p.Len()).Msg("saved")
	return nil
}

// valuer loads the prices of every ticker of p and returns a Valuer reading them.
func (a *app) valuer(ctx context.Context, p *folio.Portfolio) (*folio.Valuer, error) {
	if err := a.market.Ensure(ctx, p.Tickers()...); err != nil {
		return nil, err
	}
	return folio.NewValuer(a.market.AsOf(a.cfg.Prices.LookbackDays)), nil
}

// newLogger returns a console logger on stderr.
func newLogger(level string) *log.Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return &log.Logger{
		Level:  lvl,
		Writer: &log.ConsoleWriter{Writer: os.Stderr, ColorOutput: isTerminal(os.Stderr)},
	}
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// run opens the app, calls f and closes the app, mapping errors to an exit status.
func run(ctx context.Context, f func(*app) error) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	if err := f(a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// usageError reports a missing or malformed flag.
type usageError string

func (e usageError) Error() string { return string(e) }

// required returns a usageError for every empty flag, given as name and value pairs.
func required(pairs ...string) error {
	var errs []error
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			errs = append(errs, usageError(fmt.Sprintf("-%s is required", pairs[i])))
		}
	}
	return errors.Join(errs...)
}

// printMarkdown prints md rendered for the terminal, or as is with -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
