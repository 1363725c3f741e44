// Package engine owns the in-memory routine and streak state and applies
// every user mutation to it.
//
// ARCHITECTURE:
//
// Persist-then-apply:
// Each mutation builds the updated record on a copy, writes it through the
// store.Repository, and only then replaces the in-memory value. After any
// call returns, memory and storage agree.
//
// Single actor:
// Operations run to completion on the caller's goroutine and never block
// on anything but storage. Only the subscriber list is locked, so a poller
// can subscribe from another goroutine.
//
// Routine states are derived, not stored:
//   - inactive: isActive is false
//   - active: isActive and at least one habit open (the first open habit is
//     the current task)
//   - complete: every habit done
//
// Completion check:
// ToggleHabit fires MarkRoutineComplete whenever the routine ends up
// complete, including after an un-complete/re-complete cycle. The streak
// itself only grows on the call that completes both routines for a day.
package engine
