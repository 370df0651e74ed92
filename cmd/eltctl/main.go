package main

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

var version = "0.1.0"

func main() {
	// Handle --version before the parser (go-flags requires a subcommand,
	// but --version is valid without one).
	for _, arg := range os.Args[1:] {
		if arg == "--version" {
			fmt.Printf("eltctl %s\n", version)
			return
		}
		if arg == "--" {
			break
		}
	}

	parser, _ := buildParser()

	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*goflags.Error); ok && fe.Type == goflags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "eltctl: %v\n", err)
		os.Exit(1)
	}
}
