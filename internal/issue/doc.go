// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries what was attempted, on which resource, and what the
// user can do about it. The issue catalog holds longer Markdown guidance for
// the failures modload users run into, rendered with glamour.
package issue
