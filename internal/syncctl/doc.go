// Package syncctl keeps the dashboard's filter state and its navigation
// history synchronized in both directions.
//
// # State machine
//
// The Controller has two phases:
//
//	Idle ──(mount / back / forward / open link)──> ApplyingLocation
//	ApplyingLocation ──(scheduled release fires)──> Idle
//
// Entering ApplyingLocation engages the Guard, decodes the location into the
// canonical state and schedules the guard's release. The publish step runs on
// every state change but does nothing while the guard is engaged, so a
// location-driven update can never push a history entry of its own.
//
// User edits (Set, Update) run in Idle and always reach the publish step:
// encode the state, ask location.Policy whether it differs from the current
// entry, and push when it does. This is the only path that grows the history
// for user edits.
//
// # Scheduling
//
// Guard releases go through a Scheduler. The Queue implementation holds them
// until the host flushes it on its next loop turn; the UI sends itself a
// message after any update that left work queued. Close releases the guard
// directly so a release that never fires cannot keep it held.
//
// # Ownership
//
// A Controller belongs to one loop (the Bubble Tea Update goroutine) and is not
// safe for concurrent use. Remote lookups live elsewhere (package options) and
// never write to the controller.
package syncctl
