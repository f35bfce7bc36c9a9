// Package store provides SQLite-backed durable storage for solver sessions.
//
// The store is an append-only log with two tables:
//   - sessions: one row per session, holding the board definition it started from
//   - events: every command executed in a session, with its outcome
//
// # Ordering
//
// Events are stamped with seq from the session's logical clock, never with
// timestamps. Every read orders by seq ASC, so replaying the same log always
// re-executes commands in the same order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Events must reference a known session
package store
