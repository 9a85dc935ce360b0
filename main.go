// SPDX-License-Identifier: MPL-2.0

// modload resolves, fetches and loads versioned modules.
package main

import "github.com/yenbao1340/gmaps-utility-library-dev-sub001/cmd/modload"

func main() {
	cmd.Execute()
}
