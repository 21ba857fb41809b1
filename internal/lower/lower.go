// Package lower converts value-returning functions into void
// functions that write their result through a synthesized output
// parameter. Only the callee's signature and body change; call sites
// elsewhere in the unit are the caller's responsibility.
package lower

import (
	"fmt"

	"github.com/cfix-labs/cfix/internal/ast"
	"github.com/cfix-labs/cfix/internal/types"
)

// outBase is the base name of the synthesized output parameter.
const outBase = "out"

// maxSuffix bounds the search for a free parameter name. Exhausting
// it means the input declares a thousand "out"-prefixed names and is
// treated as a fatal input error.
const maxSuffix = 1000

// LowerUnit lowers every non-void function of the unit.
func LowerUnit(unit *ast.TranslationUnit) error {
	for _, fn := range unit.Functions {
		if err := Lower(fn); err != nil {
			return fmt.Errorf("lowering %s: %w", fn.Name, err)
		}
	}
	return nil
}

// Lower rewrites fn in place. Void functions are returned unchanged,
// which makes the pass idempotent. After lowering, the function is
// void, its first parameter is a pointer to the original return type,
// every value return has become a store through that parameter, and
// bare returns survive as early exits.
func Lower(fn *ast.FunctionDefinition) error {
	if fn.ReturnType.IsVoid() {
		return nil
	}

	retType := fn.ReturnType
	fn.ReturnType = ast.Void()

	outName, err := freshName(fn)
	if err != nil {
		return err
	}

	outParam := ast.Parameter{Name: outName, Type: ast.PointerTo(retType)}
	fn.Params = append([]ast.Parameter{outParam}, fn.Params...)

	lowerBlock(fn.Body, outName)
	return nil
}

// freshName picks a parameter name that collides with no existing
// parameter or local declaration, appending an increasing numeric
// suffix to the base name until unique.
func freshName(fn *ast.FunctionDefinition) (string, error) {
	used := usedNames(fn)
	if !used[outBase] {
		return outBase, nil
	}
	for i := 1; i < maxSuffix; i++ {
		name := fmt.Sprintf("%s%d", outBase, i)
		if !used[name] {
			return name, nil
		}
	}
	return "", &types.NameCollisionError{Function: fn.Name, Base: outBase}
}

// usedNames collects parameter names and local declaration names,
// including declarations in nested blocks.
func usedNames(fn *ast.FunctionDefinition) map[string]bool {
	used := make(map[string]bool)
	for _, p := range fn.Params {
		used[p.Name] = true
	}
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		if decl, ok := n.(*ast.VarDecl); ok {
			used[decl.Name] = true
		}
		return true
	})
	return used
}

// lowerBlock replaces every value return in the block, recursing into
// conditional, loop and nested-block bodies so that no surviving
// return carries an expression.
func lowerBlock(b *ast.Block, outName string) {
	if b == nil {
		return
	}
	for i, s := range b.Stmts {
		switch s := s.(type) {
		case *ast.Return:
			if s.Value != nil {
				b.Stmts[i] = &ast.Assign{
					Target: ast.Deref(ast.NewIdent(outName)),
					Value:  s.Value,
				}
			}
		case *ast.If:
			lowerBlock(s.Then, outName)
			lowerBlock(s.Else, outName)
		case *ast.Loop:
			lowerBlock(s.Body, outName)
		case *ast.BlockStmt:
			lowerBlock(s.Block, outName)
		}
	}
}
