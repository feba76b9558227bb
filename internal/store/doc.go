// Package store persists metabolic models and an append-only log of
// exchange reactions in SQLite.
//
// Models are stored relationally (models, metabolites, reactions,
// reaction_metabolites) with a position column so a loaded model keeps
// the insertion order it was saved with. Annotations are canonical JSON
// and every row carries the content hash of the entity it came from.
//
// Exchange events are never updated or deleted. They are ordered by seq,
// a per-database logical counter, and identified by UUIDv7.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
