// Package database provides SQLite-based storage for analysis run history.
//
// This package implements the RunDB, which stores one row per analysis
// run: the target URL, the model configuration used, and the validated
// result serialized as interchange JSON. The history subcommand reads
// this table to show past runs without re-invoking any provider.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
