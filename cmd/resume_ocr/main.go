// Package main provides the entry point for the resume OCR extraction CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_ocr",
	Short: "Resume OCR extraction pipeline",
	Long:  "Resume OCR extracts structured candidate data from scanned resume images and PDFs: layout analysis, multi-pass OCR, section identification, validation, template mapping and quality scoring.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
