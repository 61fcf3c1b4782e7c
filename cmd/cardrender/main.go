// Command cardrender renders card documents to HTML or an interactive
// terminal session and validates them against the card schema.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
