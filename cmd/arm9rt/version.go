package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the arm9rt version",
	Run: func(cmd *cobra.Command, args []string) {
		version := "(devel)"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			version = info.Main.Version
		}
		fmt.Fprintln(cmd.OutOrStdout(), "arm9rt", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
