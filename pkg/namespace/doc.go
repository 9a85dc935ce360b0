// SPDX-License-Identifier: MPL-2.0

// Package namespace implements the hierarchical registry loaded modules
// export into.
//
// Values live at dotted paths ("widget.util.format"). Merging a path creates
// the missing intermediate containers and reuses existing ones, so exporting
// "lib.util" after "lib.core" leaves "lib.core" in place. Only the leaf at the
// full path is ever reassigned.
package namespace
