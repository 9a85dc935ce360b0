// SPDX-License-Identifier: MPL-2.0

// Package resolver turns a (module name, version specifier) pair into a
// concrete fetch location.
//
// A specifier is either the development sentinel [Development], which selects
// the unversioned development tree, or a version prefix. Prefix resolution
// scans the catalog's versions in release order and keeps the last version
// that starts with the prefix, so "1" against ["1.0", "1.1", "1.2"] picks
// "1.2". Matching is plain string-prefix matching: "1.1" also matches "1.10".
package resolver
