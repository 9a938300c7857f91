// Package finlit turns a plain-text accounting ledger into the numbers behind
// a personal-finance dashboard.
//
// The core functionalities include:
//   - Ledger: an immutable, date-sorted record of transactions, prices,
//     commodity declarations and options, stored as JSONL.
//   - Price resolution: a symmetric table of dated exchange rates, able to
//     project a missing rate through a single intermediate currency.
//   - Valuation history: a day-by-day (or month-by-month) replay of the ledger
//     that values assets, liabilities and net worth in a reporting currency.
//   - Trajectories: forward projections of net worth under four contribution
//     scenarios, merged with the historical series, and a Coast FIRE curve.
//   - Reports: trailing income and expense averages, expense ratios and the
//     allocation of an investment portfolio.
//
// This package is the engine behind the `finlit` command-line tool.
package finlit
