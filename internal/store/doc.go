// Package store provides SQLite-backed durable storage for ritual records.
//
// Two layers live here:
//   - Store: a string key to string value table in SQLite
//   - Repository: typed JSON records over any KV, with fixed defaults
//
// # Records
//
// Exactly five keys are used: morning_routine, night_routine, streak_data,
// settings and audio_library. A key that is absent, or whose value does not
// decode, reads back as the key's default. Decode failures are logged and
// never returned to callers.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Every write is a single upsert statement, so a reader never observes a
// partially written value.
package store
