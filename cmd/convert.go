package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cfix-labs/cfix/convert"
	"github.com/cfix-labs/cfix/formatter"
	"github.com/cfix-labs/cfix/internal/types"
)

var (
	strict     bool
	passes     string
	jsonOutput bool
	outPath    string
)

var convertCmd = &cobra.Command{
	Use:   "convert [paths...]",
	Short: "Run the configured transformation passes over tree files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		p, err := newPipeline()
		if err != nil {
			logger.Fatal("Failed to initialize pipeline", zap.Error(err))
		}

		issues, err := convert.ProcessFiles(ctx, logger, p, args)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		printIssues(issues)
		if len(issues) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	convertCmd.Flags().BoolVar(&strict, "strict", false, "Fail conversion on unresolved function pointer calls")
	convertCmd.Flags().StringVar(&passes, "passes", "", "Pass set to run: rewrite, lower or both")
	convertCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output issues in JSON format")
	convertCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func newPipeline() (*convert.Pipeline, error) {
	cfg, err := convert.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if strict {
		cfg.Strict = true
	}
	if passes != "" {
		cfg.Passes = passes
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return convert.NewPipeline(nil, nil, cfg, logger), nil
}

func printIssues(issues []types.Issue) {
	if len(issues) == 0 {
		return
	}

	if !jsonOutput {
		fmt.Println(formatter.Format(issues))
		return
	}

	byFunction := make(map[string][]types.Issue)
	for _, issue := range issues {
		byFunction[issue.Function] = append(byFunction[issue.Function], issue)
	}
	d, err := json.Marshal(byFunction)
	if err != nil {
		logger.Error("Error marshalling issues to JSON", zap.Error(err))
		return
	}
	if outPath == "" {
		fmt.Println(string(d))
		return
	}
	if err := os.WriteFile(outPath, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
