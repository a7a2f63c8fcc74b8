// Package state holds the most recent aggregated-player load behind a
// read-write lock, shared between the loader and the UI.
//
// Update replaces the stored players on success. On failure it keeps the
// previous players, records the error and counts consecutive failures so the
// UI can tell a single hiccup from an unreachable API:
//
//	store.Update(f, players, nil)  // players replaced, error cleared
//	store.Update(f, nil, err)      // players kept, LastError = err
//
// Snapshot returns copies; callers may mutate what they get back.
package state
