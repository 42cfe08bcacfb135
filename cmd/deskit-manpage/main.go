package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/deskit/cmd/deskit"
	"github.com/arthur-debert/deskit/internal/version"
)

func main() {
	rootCmd := deskit.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DESKIT",
		Section: "1",
		Source:  "deskit " + version.Version,
		Manual:  "deskit manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
