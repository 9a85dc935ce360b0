// SPDX-License-Identifier: MPL-2.0

// Package artifactserver serves module artifacts over HTTP in the layout the
// resolver builds URLs for: released artifacts under /release and the
// development tree under /dev, e.g.
//
//	GET /release/widget/1.1/src/widget_packed.cue
//	GET /dev/widget/src/widget.sh
package artifactserver
