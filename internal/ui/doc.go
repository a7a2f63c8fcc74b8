// Package ui is the Bubble Tea front end of the dashboard.
//
// The model owns the sync controller and drives it from key presses:
// filter keys call Controller.Set, "[" and "]" walk the history, and "o"
// opens a typed link. Whatever the controller defers to the next turn is run
// by a flushMsg returned as a command, so the guard clears only after the
// current update has been fully handled.
//
// Every filter change issues two lookups as commands: legal option sets
// through options.Resolver and the aggregated players table. Both share one
// busy tracker that feeds the header spinner. Responses carry the request
// number they were issued with and anything but the latest is dropped.
//
// Sort order, table cursor and theme are local view state and never end up in
// the location.
package ui
