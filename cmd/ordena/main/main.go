package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/ordena/cmd/ordena"
	"github.com/arthur-debert/ordena/pkg/style"
)

func main() {
	rootCmd := ordena.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
