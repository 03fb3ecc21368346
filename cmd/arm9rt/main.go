package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arm9rt",
	Short: "Startup stub generator for ARM9 targets",
	Long:  "arm9rt transforms annotated Go packages into safety-checked entry and exception stubs for ARM9-class processors.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
