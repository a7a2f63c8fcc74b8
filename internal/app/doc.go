// Package app is the composition root of the dashboard.
//
// Run loads configuration and preferences, builds the API client, and wires
// one metrics recorder, one shared busy tracker, the options resolver and the
// sync controller before handing them to the UI. The controller is closed when
// the UI exits so a pending guard never outlives the program.
//
//	config.Load ─┐
//	prefs.Load  ─┼─▶ wire ─▶ preload ─▶ ui.Run
//	NewClient   ─┘
package app
