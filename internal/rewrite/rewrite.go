// Package rewrite turns indirect calls through function-pointer
// variables into direct calls to their statically resolved targets.
// Pointer declarations and assignments are dead after resolution and
// are stripped from the output; everything else passes through in
// original order.
package rewrite

import (
	"errors"
	"fmt"

	"github.com/cfix-labs/cfix/internal/ast"
	"github.com/cfix-labs/cfix/internal/resolve"
	"github.com/cfix-labs/cfix/internal/types"
)

// Mode selects how unresolved pointer calls are handled.
type Mode int

const (
	// ModeTolerant records a diagnostic and leaves the indirect
	// call in place.
	ModeTolerant Mode = iota
	// ModeStrict fails the conversion of the enclosing function.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "tolerant"
}

// Rewriter rewrites translation units. It holds no per-unit state and
// is safe to reuse.
type Rewriter struct {
	mode Mode
}

// New creates a rewriter with the given strictness.
func New(mode Mode) *Rewriter {
	return &Rewriter{mode: mode}
}

// Rewrite transforms every function of the unit in place. In strict
// mode a function with an unresolved call is left untouched and its
// error is joined into the returned error; remaining functions are
// still processed. Re-running Rewrite on its own output is a no-op:
// no pointer declarations remain to process.
func (r *Rewriter) Rewrite(unit *ast.TranslationUnit) ([]types.Issue, error) {
	var issues []types.Issue
	var errs []error
	for _, fn := range unit.Functions {
		fnIssues, err := r.RewriteFunc(fn)
		issues = append(issues, fnIssues...)
		if err != nil {
			errs = append(errs, fmt.Errorf("rewriting %s: %w", fn.Name, err))
		}
	}
	return issues, errors.Join(errs...)
}

// RewriteFunc transforms a single function. The body is replaced only
// when the whole rewrite succeeds, so a strict-mode failure leaves
// the function exactly as it was.
func (r *Rewriter) RewriteFunc(fn *ast.FunctionDefinition) ([]types.Issue, error) {
	res := resolve.Resolve(fn)
	if len(res.Vars) == 0 {
		return nil, nil
	}

	w := &walker{mode: r.mode, fn: fn.Name, vars: res.Vars}
	body, err := w.rewriteBlock(fn.Body, resolve.NewState())
	if err != nil {
		return w.issues, err
	}
	fn.Body = body
	return w.issues, nil
}

type walker struct {
	mode   Mode
	fn     string
	vars   map[string]bool
	issues []types.Issue
}

// rewriteBlock re-walks stmts in the same order the resolver uses,
// maintaining an equivalent resolution state, and returns the
// transformed block.
func (w *walker) rewriteBlock(b *ast.Block, st *resolve.State) (*ast.Block, error) {
	if b == nil {
		return nil, nil
	}
	out := &ast.Block{Stmts: make([]ast.Stmt, 0, len(b.Stmts))}
	for _, s := range b.Stmts {
		rewritten, keep, err := w.rewriteStmt(s, st)
		if err != nil {
			return nil, err
		}
		if keep {
			out.Stmts = append(out.Stmts, rewritten)
		}
	}
	return out, nil
}

func (w *walker) rewriteStmt(s ast.Stmt, st *resolve.State) (ast.Stmt, bool, error) {
	switch s := s.(type) {
	case *ast.VarDecl:
		if w.vars[s.Name] {
			st.Declare(s.Name)
			return nil, false, nil
		}
		return s, true, nil

	case *ast.Assign:
		target, ok := s.Target.(*ast.Ident)
		if !ok || !w.vars[target.Name] {
			return s, true, nil
		}
		if rhs, ok := s.Value.(*ast.Ident); ok {
			st.Bind(target.Name, rhs.Name)
		} else {
			w.report(types.Issue{
				Code:     types.CodeUnsupportedConstruct,
				Function: w.fn,
				Variable: target.Name,
				Message:  fmt.Sprintf("function pointer %q assigned a non-identifier expression", target.Name),
			})
		}
		return nil, false, nil

	case *ast.CallStmt:
		return w.rewriteCall(s, st)

	case *ast.If:
		// Same copy policy as the resolver: branch state does
		// not survive the conditional.
		then, err := w.rewriteBlock(s.Then, st.Clone())
		if err != nil {
			return nil, false, err
		}
		var els *ast.Block
		if s.Else != nil {
			if els, err = w.rewriteBlock(s.Else, st.Clone()); err != nil {
				return nil, false, err
			}
		}
		return &ast.If{Cond: s.Cond, Then: then, Else: els}, true, nil

	case *ast.Loop:
		// Loop bodies fold back: the body mutates the live state.
		body, err := w.rewriteBlock(s.Body, st)
		if err != nil {
			return nil, false, err
		}
		return &ast.Loop{Kind: s.Kind, Cond: s.Cond, Body: body}, true, nil

	case *ast.BlockStmt:
		block, err := w.rewriteBlock(s.Block, st.Clone())
		if err != nil {
			return nil, false, err
		}
		return &ast.BlockStmt{Block: block}, true, nil

	default:
		return s, true, nil
	}
}

func (w *walker) rewriteCall(s *ast.CallStmt, st *resolve.State) (ast.Stmt, bool, error) {
	callee, ok := s.Callee.(*ast.Ident)
	if !ok || !w.vars[callee.Name] {
		return s, true, nil
	}

	if target, ok := st.Lookup(callee.Name); ok {
		args := s.Args
		if len(args) == 0 {
			args = []ast.Expr{}
		}
		return &ast.CallStmt{Callee: ast.NewIdent(target), Args: args}, true, nil
	}

	if w.mode == ModeStrict {
		return nil, false, &types.UnresolvedCallError{Function: w.fn, Variable: callee.Name}
	}
	w.report(types.Issue{
		Code:     types.CodeUnresolvedPointerCall,
		Function: w.fn,
		Variable: callee.Name,
		Message:  fmt.Sprintf("unresolved function pointer call through %q", callee.Name),
	})
	return s, true, nil
}

func (w *walker) report(issue types.Issue) {
	w.issues = append(w.issues, issue)
}
