// SPDX-License-Identifier: MPL-2.0

// Package catalog holds the version catalog: the immutable mapping from a
// logical module name to the versions published for it, in release order.
//
// A catalog is built once at process start, from an explicit entry list
// ([New]), from a file ([Load], one of CUE, TOML, YAML or HCL), from the
// embedded default catalog ([Default]) or from the version tags of a git
// remote ([FromGitTags]). It is never mutated afterwards, so it can be shared
// freely between goroutines.
//
// Version order matters: the resolver scans versions in stored order and the
// last prefix match wins, so entries must list versions oldest first.
package catalog
