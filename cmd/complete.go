package cmd

import (
	"context"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etnz/folio/store"
)

// predictPortfolios completes the names of the portfolios of the configured store.
var predictPortfolios = complete.PredictFunc(func(prefix string) []string {
	cfg, err := LoadConfig(configPath())
	if err != nil {
		return nil
	}
	s, err := store.Open(cfg.Store.Kind, cfg.Store.Path, nil)
	if err != nil {
		return nil
	}
	defer s.Close()
	names, err := s.Names(context.Background())
	if err != nil {
		return nil
	}
	return names
})

var predictPeriod = predict.Set{"daily", "monthly", "yearly"}

// Completion returns the shell completion of the stk command line.
//
// A main package calls Completion().Complete(name) before parsing flags, the call exits when the
// shell is asking for completions.
func Completion() *complete.Command {
	trade := map[string]complete.Predictor{
		"p": predictPortfolios,
		"s": predict.Something,
		"q": predict.Something,
		"d": predict.Something,
	}
	onDay := map[string]complete.Predictor{
		"p": predictPortfolios,
		"d": predict.Something,
	}
	ticker := func(flags ...string) map[string]complete.Predictor {
		m := map[string]complete.Predictor{"s": predict.Something}
		for _, f := range flags {
			m[f] = predict.Something
		}
		return m
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":     predict.Files("*.yaml"),
			"store":      predict.Set{store.KindDir, store.KindSQLite},
			"store-path": predict.Files("*"),
			"raw":        predict.Nothing,
			"v":          predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"create": {Flags: map[string]complete.Predictor{
				"p": predictPortfolios,
				"s": predict.Something,
				"q": predict.Something,
			}},
			"buy":  {Flags: trade},
			"sell": {Flags: trade},
			"list": {},
			"show": {Flags: map[string]complete.Predictor{"p": predictPortfolios}},
			"export": {Flags: map[string]complete.Predictor{
				"p": predictPortfolios,
				"o": predict.Files("*.txt"),
			}},
			"import":       {Flags: map[string]complete.Predictor{"i": predict.Files("*.txt")}},
			"composition":  {Flags: onDay},
			"value":        {Flags: onDay},
			"distribution": {Flags: onDay},
			"rebalance": {Flags: map[string]complete.Predictor{
				"p": predictPortfolios,
				"d": predict.Something,
				"w": predict.Something,
				"n": predict.Nothing,
			}},
			"performance": {Flags: map[string]complete.Predictor{
				"p":    predictPortfolios,
				"from": predict.Something,
				"to":   predict.Something,
				"i":    predictPeriod,
				"png":  predict.Files("*.png"),
			}},
			"gain":      {Flags: ticker("from", "to")},
			"average":   {Flags: ticker("d", "x")},
			"crossover": {Flags: ticker("from", "to", "x")},
			"help":      {},
			"flags":     {},
			"commands":  {},
		},
	}
}
