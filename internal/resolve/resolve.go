// Package resolve implements the flow-sensitive function-pointer
// target analysis. For each function it discovers the scalar
// function-pointer variables declared in the body and computes, at
// each program point, the most recently assigned concrete function
// for each of them.
//
// The analysis is deliberately not a dataflow join: conditional
// branches and nested blocks are visited with a copy of the state
// that is discarded afterwards, while a loop body is visited once on
// the live state so its reassignments remain visible after the loop.
// Unifying the two policies would change observable resolution
// results and must not be done.
package resolve

import "github.com/cfix-labs/cfix/internal/ast"

// Result holds the outcome of resolving one function: the set of
// function-pointer variables found in its body and the resolution
// state at the function's exit. Exit state never leaks into the
// resolution of another function.
type Result struct {
	Vars map[string]bool
	Exit *State
}

// Tracked reports whether name was found to be a function-pointer
// variable of the resolved function.
func (r *Result) Tracked(name string) bool {
	return r.Vars[name]
}

// Resolve analyzes fn in a single linear pass and returns the
// discovered function-pointer variables together with the exit state.
// The function is not modified.
//
// The variable set is function-wide: a pointer declared inside a
// branch or nested block still belongs to the enclosing function.
// Branch-local resolution state, by contrast, is discarded.
func Resolve(fn *ast.FunctionDefinition) *Result {
	vars := make(map[string]bool)
	collectVars(fn.Body, vars)

	st := NewState()
	walkBlock(fn.Body, st)
	return &Result{Vars: vars, Exit: st}
}

// collectVars gathers every function-pointer declaration in the body,
// recursing into all nested constructs.
func collectVars(b *ast.Block, vars map[string]bool) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		switch s := s.(type) {
		case *ast.VarDecl:
			if s.Type.Kind == ast.KindFuncPtr {
				vars[s.Name] = true
			}
		case *ast.If:
			collectVars(s.Then, vars)
			collectVars(s.Else, vars)
		case *ast.Loop:
			collectVars(s.Body, vars)
		case *ast.BlockStmt:
			collectVars(s.Block, vars)
		}
	}
}

// walkBlock visits stmts in order, mutating st. Callers decide
// whether st is the live state or a branch-local clone.
func walkBlock(b *ast.Block, st *State) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		walkStmt(s, st)
	}
}

func walkStmt(s ast.Stmt, st *State) {
	switch s := s.(type) {
	case *ast.VarDecl:
		if s.Type.Kind == ast.KindFuncPtr {
			st.Declare(s.Name)
		}
	case *ast.Assign:
		applyAssign(s, st)
	case *ast.If:
		// Branch states are copies; statements after the
		// conditional observe the pre-branch state.
		walkBlock(s.Then, st.Clone())
		if s.Else != nil {
			walkBlock(s.Else, st.Clone())
		}
	case *ast.Loop:
		// The body is visited once on the live state, as if the
		// loop always executes; reassignments fold back.
		walkBlock(s.Body, st)
	case *ast.BlockStmt:
		walkBlock(s.Block, st.Clone())
	case *ast.CallStmt, *ast.Return:
		// No effect on resolution.
	}
}

// applyAssign updates st for an assignment statement. Only
// identifier-to-identifier assignments change a binding; anything
// else involving a tracked variable is the rewriter's problem to
// report.
func applyAssign(s *ast.Assign, st *State) {
	target, ok := s.Target.(*ast.Ident)
	if !ok || !st.Tracked(target.Name) {
		return
	}
	if rhs, ok := s.Value.(*ast.Ident); ok {
		st.Bind(target.Name, rhs.Name)
	}
}
