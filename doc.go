// Package blingslang projects the value of a set of named financial accounts
// forward in time under deterministic growth and scheduled cash-flow rules,
// producing a day-by-day time series usable for reporting and plotting.
//
// The core functionalities include:
//   - Accounts: named values with an optional annual growth rate, scheduled
//     recurring updates (including transfers between accounts), and optional
//     derivation from another account's value (share-price accounts).
//   - Recurrence Scheduling: computing the next calendar date on which a
//     scheduled update fires, and advancing it after each firing.
//   - Trajectory Simulation: a dependency-ordered per-day valuation pass over
//     an account group, accumulating results into a date-indexed table.
//   - Reporting: start/final/change summaries, day-by-day history views, JSON
//     export, and CSV plot extraction over simulated tables.
//
// Everything is deterministic: given the same configuration, a simulation
// always produces the same table. This package serves as the foundational
// logic for the `bls` command-line tool.
package blingslang
