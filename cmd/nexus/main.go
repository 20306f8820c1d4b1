// Package main provides the entry point for the career intelligence engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nexus",
	Short: "Career intelligence engine",
	Long: "Nexus Talent analyzes a candidate's resume against a target role: it parses the document, " +
		"sources matching jobs, scores the fit, identifies skill gaps, and recommends a learning path.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
