package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/phuslu/log"
	"gopkg.in/yaml.v3"

	"github.com/etnz/folio/alphavantage"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/store"
)

// ConfigEnv is the environment variable holding the path of the configuration file.
const ConfigEnv = "STK_CONFIG"

// DefaultConfigFile is read when neither -config nor STK_CONFIG are set.
const DefaultConfigFile = "stk.yaml"

// Config is the content of the stk.yaml file.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Prices   PricesConfig   `yaml:"prices"`
	Calendar CalendarConfig `yaml:"calendar"`
	// Currency is the ISO code used to format amounts.
	Currency string    `yaml:"currency"`
	Log      LogConfig `yaml:"log"`
}

// StoreConfig selects where portfolios are saved.
type StoreConfig struct {
	Kind string `yaml:"kind"` // dir or sqlite
	Path string `yaml:"path"`
}

// PricesConfig configures the AlphaVantage loader.
type PricesConfig struct {
	Cache             string        `yaml:"cache"`
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	MaxAge            time.Duration `yaml:"max_age"`
	// LookbackDays is how far back a missing close is searched for, to value on weekends.
	LookbackDays int `yaml:"lookback_days"`
}

// CalendarConfig lists the market holidays, on top of weekends.
type CalendarConfig struct {
	Holidays []string `yaml:"holidays"`
}

// LogConfig sets the minimum level of the log messages.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used without a stk.yaml file.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{Kind: store.KindDir, Path: "portfolios"},
		Prices: PricesConfig{
			Cache:             "prices",
			BaseURL:           alphavantage.DefaultBaseURL,
			RequestsPerMinute: alphavantage.DefaultRequestsPerMinute,
			MaxAge:            24 * time.Hour,
			LookbackDays:      7,
		},
		Currency: renderer.DefaultCurrency,
		Log:      LogConfig{Level: "info"},
	}
}

// LoadConfig reads the configuration file over the defaults. A missing file is not an error.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", filename, err)
	}
	// relative paths are relative to the config file
	dir := filepath.Dir(filename)
	cfg.Store.Path = resolve(dir, cfg.Store.Path)
	cfg.Prices.Cache = resolve(dir, cfg.Prices.Cache)
	return cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Validate checks every value, reporting all the problems at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Kind {
	case store.KindDir, store.KindSQLite:
	default:
		errs = append(errs, fmt.Errorf("store.kind must be %q or %q, got %q", store.KindDir, store.KindSQLite, c.Store.Kind))
	}
	if c.Store.Path == "" {
		errs = append(errs, errors.New("store.path is required"))
	}
	if c.Prices.RequestsPerMinute < 0 {
		errs = append(errs, fmt.Errorf("prices.requests_per_minute must not be negative, got %d", c.Prices.RequestsPerMinute))
	}
	if c.Prices.MaxAge < 0 {
		errs = append(errs, fmt.Errorf("prices.max_age must not be negative, got %s", c.Prices.MaxAge))
	}
	if c.Prices.LookbackDays < 0 {
		errs = append(errs, fmt.Errorf("prices.lookback_days must not be negative, got %d", c.Prices.LookbackDays))
	}
	if _, err := c.Holidays(); err != nil {
		errs = append(errs, err)
	}
	if money.GetCurrency(c.Currency) == nil {
		errs = append(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Holidays returns the trading calendar.
func (c *Config) Holidays() (date.Calendar, error) {
	if len(c.Calendar.Holidays) == 0 {
		return date.Weekdays, nil
	}
	days := make([]date.Date, 0, len(c.Calendar.Holidays))
	for _, s := range c.Calendar.Holidays {
		d, err := date.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("calendar.holidays: %w", err)
		}
		days = append(days, d)
	}
	return date.NewHolidays(days...), nil
}

// APIKey returns the configured key, or the one in the environment.
func (c *Config) APIKey() string {
	if c.Prices.APIKey != "" {
		return c.Prices.APIKey
	}
	return os.Getenv(alphavantage.APIKeyEnv)
}

func parseLevel(level string) (log.Level, error) {
	switch level {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("log.level must be debug, info, warn or error, got %q", level)
	}
}
