package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/pipeline"
)

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the pipeline version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "resume_ocr pipeline %s\n", pipeline.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCommand)
}
