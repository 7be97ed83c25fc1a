package main

import (
	"os"
)

// Версия, подставляется через ldflags при сборке.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
