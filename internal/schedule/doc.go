// Package schedule converts 12-hour target times to positions on a
// 1440-minute circular clock and derives the values shown while a routine
// is pending: which routine is active and how long until its target.
//
// All functions are pure. The caller supplies now; its location decides
// the calendar day used for countdowns.
package schedule
