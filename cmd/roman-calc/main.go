// Package main is the entry point for the roman-calc CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/roman-calculator/cmd/roman-calc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
