package types

import "fmt"

// ParseError reports that the external parser rejected its input.
// It aborts the conversion of that input only, never the process.
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Detail
}

// UnresolvedCallError reports a call through a function-pointer
// variable with no statically known target at that program point.
type UnresolvedCallError struct {
	Function string
	Variable string
}

func (e *UnresolvedCallError) Error() string {
	return fmt.Sprintf("unresolved function pointer call through %q in %s", e.Variable, e.Function)
}

// NameCollisionError reports that output-parameter synthesis ran out
// of suffix attempts. This is a fatal input error, not retried.
type NameCollisionError struct {
	Function string
	Base     string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("cannot synthesize unique output parameter from %q in %s", e.Base, e.Function)
}

// UnsupportedConstructError reports an AST shape outside the modeled
// variant set, detected rather than silently mis-transformed.
type UnsupportedConstructError struct {
	Function string
	Detail   string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct in %s: %s", e.Function, e.Detail)
}
