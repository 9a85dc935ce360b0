// SPDX-License-Identifier: MPL-2.0

// Package loader coordinates bursts of asynchronous module loads.
//
// A burst starts when a final callback is armed with SetFinalCallback. Each
// Load resolves a module against the catalog, counts it as outstanding and
// hands it to a Fetcher. Fetchers report back through the Host surface
// (NotifyLoaded or NotifyFailed) from any goroutine; the coordinator merges the
// module's exports into its namespace registry, runs the module callback,
// decrements the outstanding count and, when the count reaches zero, runs the
// final callback exactly once before returning to idle.
//
// Loads that never report are failed by a per-load timeout, and a burst can be
// abandoned through the context given to SetFinalCallback or through Cancel.
package loader
