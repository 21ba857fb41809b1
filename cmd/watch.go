package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cfix-labs/cfix/convert"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-convert tree files whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directory paths")
			os.Exit(1)
		}

		p, err := newPipeline()
		if err != nil {
			logger.Fatal("Failed to initialize pipeline", zap.Error(err))
		}

		w, err := convert.NewWatcher(p, logger)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		if err := w.Start(args); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer w.Stop()

		logger.Info("watching for changes", zap.Strings("dirs", args))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
	},
}
