package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "sf",
		Short:   "session-finder - find and analyze Claude Code sessions",
		Version: version,
	}

	rootCmd.AddCommand(findCmd())
	rootCmd.AddCommand(timelineCmd())
	rootCmd.AddCommand(codeDiffCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
