// Package main is the entry point for the devilsdozen command line tool
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newService).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
