// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared test helpers: a manually driven clock for
// load timeout tests and a semaphore that caps concurrent container-backed
// tests.
package testutil
