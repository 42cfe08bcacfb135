package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/deskit/cmd/deskit"
	"github.com/arthur-debert/deskit/pkg/style"
)

func main() {
	rootCmd := deskit.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
