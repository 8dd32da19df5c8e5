// SlabCut builds cutlists from 3D furniture models.
//
// Build:
//
//	go build -o slabcut ./cmd/slabcut
//
// Usage:
//
//	slabcut generate bench.yaml --format json,pdf,labels --out ./cutlist
//	slabcut materials import stock.xlsx
//	slabcut serve --addr :8095
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
