// Package main provides the CLI entrypoint for mapper-generator.
//
// mapper-generator resolves mapping directives into conversion plans:
//   - Reads "//mapper:to" comment directives from Go packages
//   - Reads YAML directive files
//   - Validates every directive and reports all failing types
//   - Prints the resolved plan or generates conversion methods
package main

import (
	"context"
	"fmt"
	"os"

	"directive-mapper/cmd/mapper-generator/internal"
)

func main() {
	if err := internal.Run(context.Background(), os.Getenv, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
