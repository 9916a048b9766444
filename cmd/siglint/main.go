// Command siglint lints vehicle signalset documents and serves the
// same findings to editors over LSP.
package main

import (
	"os"

	"github.com/clutch-assistant/siglint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
