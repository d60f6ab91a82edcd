package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/xdgmime/internal/cli"
	"github.com/arthur-debert/xdgmime/pkg/ui/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// The command already reported its outcome
		if exit, ok := err.(*cli.ExitError); ok {
			os.Exit(exit.Code)
		}

		errorStyle := styles.Default().Get("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
