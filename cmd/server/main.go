// Package main is the entry point for the engine server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-engine",
	Short: "RPG Engine Server",
	Long:  `RPG Engine provides an HTTP interface for character progression, equipment, battles, dungeons, and the timed reward economy.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
