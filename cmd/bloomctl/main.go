// Command bloomctl creates, fills, queries and inspects Bloom filters
// persisted to files.
package main

import (
	"os"
)

func main() {
	cmd := newRootCmd(newApp(os.Stdin, os.Stdout))
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
