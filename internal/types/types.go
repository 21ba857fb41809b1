package types

import "fmt"

// Issue codes emitted by the transformation passes.
const (
	CodeUnresolvedPointerCall = "unresolved-pointer-call"
	CodeUnsupportedConstruct  = "unsupported-construct"
)

// Issue represents a diagnostic produced while transforming a
// translation unit. Issues are collected, not thrown; strict mode
// turns unresolved-call issues into errors instead.
type Issue struct {
	Code       string
	Function   string
	Variable   string
	Message    string
	Suggestion string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Code, i.Function, i.Message)
}
