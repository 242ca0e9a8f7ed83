// SibGlass: AluPro to Sibglass glass order converter
//
// Reads the insulated glass lines of an AluPro export, composes
// descriptive formulas from the material catalog and writes them into the
// Sibglass request template.
//
// Build:
//   go build -o sibglass ./cmd/sibglass
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o sibglass.exe ./cmd/sibglass

package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
