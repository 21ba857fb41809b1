package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cfix-labs/cfix/convert"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [paths...]",
	Short: "Lower value-returning functions to output-parameter form only",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		cfg, err := convert.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		cfg.Passes = convert.PassesLower

		p := convert.NewPipeline(nil, nil, cfg, logger)
		if _, err := convert.ProcessFiles(ctx, logger, p, args); err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}
	},
}
