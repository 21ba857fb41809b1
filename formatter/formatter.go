// Package formatter renders conversion diagnostics for terminal
// output.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/cfix-labs/cfix/internal/types"
)

var (
	codeStyle     = color.New(color.FgYellow, color.Bold)
	functionStyle = color.New(color.FgCyan)
	messageStyle  = color.New(color.FgWhite)
)

// Format renders issues grouped by function, one line per issue.
// Color codes degrade to plain text when output is not a terminal.
func Format(issues []types.Issue) string {
	if len(issues) == 0 {
		return ""
	}

	byFunction := make(map[string][]types.Issue)
	for _, issue := range issues {
		byFunction[issue.Function] = append(byFunction[issue.Function], issue)
	}

	functions := make([]string, 0, len(byFunction))
	for fn := range byFunction {
		functions = append(functions, fn)
	}
	sort.Strings(functions)

	var b strings.Builder
	for _, fn := range functions {
		b.WriteString(functionStyle.Sprintf("%s:", fn))
		b.WriteString("\n")
		for _, issue := range byFunction[fn] {
			b.WriteString(fmt.Sprintf("  %s %s",
				codeStyle.Sprintf("[%s]", issue.Code),
				messageStyle.Sprint(issue.Message)))
			b.WriteString("\n")
			if issue.Suggestion != "" {
				b.WriteString(fmt.Sprintf("    suggestion: %s\n", issue.Suggestion))
			}
		}
	}
	return b.String()
}
