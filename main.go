package main

import (
	"fmt"
	"os"

	cmd "github.com/ternarylabs/smartctx/cmd/smartctx"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "smartctx: %v\n", err)
		os.Exit(1)
	}
}
