// SPDX-License-Identifier: MPL-2.0

// stackhand is an interactive front-end for the Haskell stack build
// tool: it discovers the enclosing project and its buildable targets,
// assembles shell-safe tool invocations from user choices, and scans
// finished output for artifact locations.
package main

func main() {
	Execute()
}
