// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for modload.
//
// Every command is built from an App, which wires configuration, logging,
// the module catalog and the artifact fetcher. Tests build an App with
// their own Dependencies and drive the cobra tree directly.
package cmd
