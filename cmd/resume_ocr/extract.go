package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/mapping"
	"github.com/jonathan/resume-formatter/internal/observability"
	"github.com/jonathan/resume-formatter/internal/pipeline"
)

var extractCommand = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract structured resume data from a scanned document",
	Long: `Runs the full extraction pipeline against a resume image or PDF and prints
an extraction report (or the raw result with --json).

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

var (
	extractConfigPath string
	extractTemplate   string
	extractLanguages  []string
	extractDPI        int
	extractJSON       bool
	extractVerbose    bool
)

func init() {
	// Config file flag (processed first)
	extractCommand.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	extractCommand.Flags().StringVarP(&extractTemplate, "template", "t", "", "Path to a template schema JSON file")
	extractCommand.Flags().StringSliceVar(&extractLanguages, "lang", nil, "Tesseract language hints (repeatable or comma-separated)")
	extractCommand.Flags().IntVar(&extractDPI, "dpi", 0, "Source scan resolution hint")
	extractCommand.Flags().BoolVar(&extractJSON, "json", false, "Emit the raw result as JSON instead of the report")
	extractCommand.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(extractCommand)
}

// resolveExtractConfig builds the effective configuration with the
// precedence flags > config file > environment > defaults.
func resolveExtractConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	var cfg config.Config
	if extractConfigPath != "" {
		loaded, err := config.LoadConfig(extractConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg.ApplyEnv()

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("template") {
		cfg.Template = extractTemplate
	}
	if cmd.Flags().Changed("lang") {
		cfg.Languages = extractLanguages
	}
	if cmd.Flags().Changed("dpi") {
		cfg.DPI = extractDPI
	}
	if cmd.Flags().Changed("json") {
		cfg.JSON = extractJSON
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = extractVerbose
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}

	cfg = cfg.MergeWithDefaults(config.Default())
	if cfg.Input == "" {
		return cfg, fmt.Errorf("no input file: pass it as an argument or set 'input' in the config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := resolveExtractConfig(cmd, args)
	if err != nil {
		return err
	}

	doc, err := document.Load(cfg.Input)
	if err != nil {
		return err
	}

	var schema *mapping.TemplateSchema
	if cfg.Template != "" {
		data, err := os.ReadFile(cfg.Template)
		if err != nil {
			return fmt.Errorf("failed to read template schema: %w", err)
		}
		schema, err = mapping.LoadSchema(data)
		if err != nil {
			return err
		}
	}

	result, err := pipeline.Run(ctx, doc, schema, pipeline.Options{
		Config:  cfg,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return err
	}

	if cfg.JSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintReport(result)
	return nil
}
