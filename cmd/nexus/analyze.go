package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"github.com/spf13/cobra"
)

var (
	analyzeFile     string
	analyzeTitle    string
	analyzeLocation string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume document from disk",
	Long:  "Run the full analysis workflow once against a local resume file and print the terminal state as JSON.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Path to the resume document (PDF or plain text)")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "Target job title")
	analyzeCmd.Flags().StringVar(&analyzeLocation, "location", "Remote", "Target location")
	_ = analyzeCmd.MarkFlagRequired("file")
	_ = analyzeCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	doc, err := os.ReadFile(analyzeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	st := &types.State{
		RawDocument: doc,
		JobTitle:    analyzeTitle,
		Location:    analyzeLocation,
	}
	if err := a.engine.Analyze(cmd.Context(), st); err != nil {
		return err
	}

	out, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
