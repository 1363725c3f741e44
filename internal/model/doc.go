// Package model defines the persisted record types for ritual.
//
// This package contains type definitions and small pure helpers only. Every
// other internal package imports model; model imports nothing internal.
//
// Key constraints:
//   - JSON tags use camelCase and match records already written by the
//     mobile app byte for byte, so field names must never change
//   - Optional fields are pointers or omitempty strings
//   - Exactly two routines exist, tagged by RoutineType
package model
