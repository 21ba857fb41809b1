package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cfix-labs/cfix/internal/ast"
)

var statsThreshold int

// Decision complexity per function: 1 plus one per conditional and
// loop, the usual branch-count approximation.
var statsCmd = &cobra.Command{
	Use:   "stats [paths...]",
	Short: "Report per-function branch complexity of tree files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide tree file paths")
			os.Exit(1)
		}

		exceeded := false
		for _, path := range args {
			content, err := os.ReadFile(path)
			if err != nil {
				logger.Error("Error reading file", zap.String("file", path), zap.Error(err))
				continue
			}
			unit, err := ast.DecodeUnit(content)
			if err != nil {
				logger.Error("Error decoding tree", zap.String("file", path), zap.Error(err))
				continue
			}

			for _, fn := range unit.Functions {
				c := complexity(fn)
				marker := ""
				if c > statsThreshold {
					marker = " (!)"
					exceeded = true
				}
				fmt.Printf("%s: %s complexity %d%s\n", path, fn.Name, c, marker)
			}
		}
		if exceeded {
			os.Exit(1)
		}
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsThreshold, "threshold", 10, "Complexity threshold")
}

func complexity(fn *ast.FunctionDefinition) int {
	c := 1
	ast.Inspect(fn, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.If, *ast.Loop:
			c++
		}
		return true
	})
	return c
}
