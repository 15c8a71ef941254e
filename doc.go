// Package folio tracks stock portfolios and analyzes daily closing prices.
//
// A [Portfolio] is a named ledger: an initial composition plus an append-only list of buy and sell
// transactions. Its composition on any day is computed by replaying the ledger, in the order the
// transactions were recorded, up to that day.
//
// The core functionalities include:
//   - Price series: daily closing prices per ticker, with gain or loss, moving averages and
//     crossover days ([PriceSeries], [Market]).
//   - Valuation: the value and the per-ticker distribution of a portfolio on a day, from any
//     [PriceSource] ([Valuer]).
//   - Rebalancing: the trades that bring a portfolio to target weights, planned or committed
//     ([Valuer.PlanRebalance], [Valuer.Rebalance]).
//   - Performance: the value of a portfolio sampled daily, monthly or yearly ([Valuer.Sample]).
//   - Persistence: a human-readable text format for portfolios ([EncodePortfolio]) and the daily
//     price CSV format ([DecodePriceSeries]).
//
// Trades entered by users go through a [Registry], that checks them with a [Validator] before they
// reach a ledger.
//
// This package serves as the foundational logic for the `stk` command-line tool.
package folio
