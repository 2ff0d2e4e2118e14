// Package survey implements the response validation pipeline.
//
// This package is the heart of the suite, containing all domain logic
// independent of any CLI or transport layer. A run flows strictly forward
// through five stages:
//
//  1. Load: parse the survey CSV (every cell stays text) and the known-token
//     list into a [State].
//  2. Repair: copy tokens misplaced into the trailing unnamed column back
//     into the token field ([RepairTokenColumn]).
//  3. Deduplicate: keep the first record per token, mark or remove the rest
//     ([Deduplicate]).
//  4. Validate: check each remaining token against the known set
//     ([ValidateTokens]).
//  5. Emit: write the cleaned table ([EmitTable]) or the deletion list
//     ([EmitList]).
//
// # Modes
//
// The pipeline is one code path parameterized by [Mode]. Delete-mode mutates
// the table in place and writes a cleaned CSV; list-mode never mutates the
// table and instead accumulates record identifiers into a [DeletionList].
// Both modes share identical repair, dedup, and validation semantics.
//
// # State
//
// There is no long-lived shared state. [Load] builds a [State] that is
// threaded explicitly through each stage function and discarded when the run
// ends, which keeps every stage unit-testable in isolation.
//
// # Error Handling
//
// Only whole-file failures are errors. A missing input file aborts the run
// with [ErrInputNotFound]; everything else that is wrong with individual
// records (bad token, duplicate token, misplaced token, missing fields) is
// data, absorbed into the remove-or-mark decision.
package survey
