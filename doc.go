// Package partnership tracks the capital of an investment partnership,
// distributes cash through a tiered waterfall and measures each partner's
// performance.
//
// The core functionalities include:
//   - Book: the append-only records of a partnership (partners, capital
//     contributions, distributions and partner cash flows), persisted as a
//     human-readable JSONL file.
//   - Capital Ledger: a stateless Snapshot of the book on a date, computing
//     each partner's contributed and unreturned capital and the preferred
//     return accrued on it.
//   - Waterfall: Allocate splits a distributable amount through return of
//     capital, preferred return, general partner catch-up and a residual split,
//     as configured by a WaterfallConfig.
//   - Performance: ROI, MOIC, IRR, cash-on-cash and annualized return of each
//     partner, derived on demand from the records.
//
// This package serves as the foundational logic for the `wf` command-line
// tool.
package partnership
