package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfix-labs/cfix/internal/ast"
)

func fnWith(stmts ...ast.Stmt) *ast.FunctionDefinition {
	return ast.Func("main", ast.Type{Kind: ast.KindOther, Name: "int"}, nil, ast.NewBlock(stmts...))
}

func TestResolveStraightLine(t *testing.T) {
	fn := fnWith(
		ast.DeclFuncPtr("fp"),
		ast.AssignName("fp", ast.NewIdent("f")),
		ast.Call("fp"),
	)

	res := Resolve(fn)
	require.True(t, res.Tracked("fp"))

	target, ok := res.Exit.Lookup("fp")
	require.True(t, ok)
	assert.Equal(t, "f", target)
}

func TestDeclaredButNeverAssigned(t *testing.T) {
	fn := fnWith(ast.DeclFuncPtr("fp"), ast.Call("fp"))

	res := Resolve(fn)
	require.True(t, res.Tracked("fp"))

	_, ok := res.Exit.Lookup("fp")
	assert.False(t, ok)
}

func TestBranchStateDoesNotMerge(t *testing.T) {
	// if (c) fp = f; else fp = g;
	// The state after the conditional reverts to the pre-branch
	// state; branch-local resolutions are discarded.
	fn := fnWith(
		ast.DeclFuncPtr("fp"),
		ast.NewIf(ast.NewIdent("c"),
			ast.NewBlock(ast.AssignName("fp", ast.NewIdent("f"))),
			ast.NewBlock(ast.AssignName("fp", ast.NewIdent("g")))),
	)

	res := Resolve(fn)
	require.True(t, res.Tracked("fp"))

	_, ok := res.Exit.Lookup("fp")
	assert.False(t, ok, "branch-local resolution must not survive the conditional")
}

func TestBranchSeesPreBranchState(t *testing.T) {
	fn := fnWith(
		ast.DeclFuncPtr("fp"),
		ast.AssignName("fp", ast.NewIdent("f")),
		ast.NewIf(ast.NewIdent("c"),
			ast.NewBlock(ast.AssignName("fp", ast.NewIdent("g"))),
			nil),
	)

	res := Resolve(fn)
	target, ok := res.Exit.Lookup("fp")
	require.True(t, ok)
	assert.Equal(t, "f", target, "post-conditional state must be the pre-branch state")
}

func TestLoopBodyFoldsBack(t *testing.T) {
	// fp = f; while (c) { fp = g; }
	// Loop reassignment is visible after the loop.
	fn := fnWith(
		ast.DeclFuncPtr("fp"),
		ast.AssignName("fp", ast.NewIdent("f")),
		ast.While(ast.NewIdent("c"),
			ast.NewBlock(ast.AssignName("fp", ast.NewIdent("g")))),
	)

	res := Resolve(fn)
	target, ok := res.Exit.Lookup("fp")
	require.True(t, ok)
	assert.Equal(t, "g", target)
}

func TestLoopFoldBackAllKinds(t *testing.T) {
	kinds := []struct {
		name string
		make func(cond ast.Expr, body *ast.Block) *ast.Loop
	}{
		{"while", ast.While},
		{"do-while", ast.DoWhile},
		{"for", ast.For},
	}

	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			fn := fnWith(
				ast.DeclFuncPtr("fp"),
				k.make(ast.NewIdent("c"),
					ast.NewBlock(ast.AssignName("fp", ast.NewIdent("g")))),
			)

			res := Resolve(fn)
			target, ok := res.Exit.Lookup("fp")
			require.True(t, ok)
			assert.Equal(t, "g", target)
		})
	}
}

func TestNestedBlockDoesNotFoldBack(t *testing.T) {
	fn := fnWith(
		ast.DeclFuncPtr("fp"),
		ast.Nested(ast.NewBlock(ast.AssignName("fp", ast.NewIdent("f")))),
	)

	res := Resolve(fn)
	_, ok := res.Exit.Lookup("fp")
	assert.False(t, ok)
}

func TestVarSetIsFunctionWide(t *testing.T) {
	// Pointers declared inside branches and loop bodies still
	// belong to the function's variable set.
	fn := fnWith(
		ast.NewIf(ast.NewIdent("c"),
			ast.NewBlock(ast.DeclFuncPtr("fp1")),
			ast.NewBlock(ast.DeclFuncPtr("fp2"))),
		ast.While(ast.NewIdent("c"),
			ast.NewBlock(ast.DeclFuncPtr("fp3"))),
		ast.Nested(ast.NewBlock(ast.DeclFuncPtr("fp4"))),
	)

	res := Resolve(fn)
	for _, name := range []string{"fp1", "fp2", "fp3", "fp4"} {
		assert.True(t, res.Tracked(name), "expected %s in variable set", name)
	}
}

func TestNonIdentifierAssignmentIgnored(t *testing.T) {
	fn := fnWith(
		ast.DeclFuncPtr("fp"),
		&ast.Assign{Target: ast.NewIdent("fp"), Value: ast.NewOpaque("table[0]")},
	)

	res := Resolve(fn)
	_, ok := res.Exit.Lookup("fp")
	assert.False(t, ok)
}

func TestOtherDeclarationsNotTracked(t *testing.T) {
	fn := fnWith(
		ast.Decl("i", "int"),
		ast.AssignName("i", ast.NewLiteral("0")),
	)

	res := Resolve(fn)
	assert.Empty(t, res.Vars)
	assert.Equal(t, 0, res.Exit.Len())
}

func TestStateCloneIndependence(t *testing.T) {
	st := NewState()
	st.Declare("fp")
	st.Bind("fp", "f")

	clone := st.Clone()
	clone.Bind("fp", "g")

	target, _ := st.Lookup("fp")
	assert.Equal(t, "f", target)

	target, _ = clone.Lookup("fp")
	assert.Equal(t, "g", target)
}

func TestBindUntrackedIsNoop(t *testing.T) {
	st := NewState()
	st.Bind("fp", "f")
	assert.False(t, st.Tracked("fp"))
	assert.Equal(t, 0, st.Len())
}

func TestNames(t *testing.T) {
	st := NewState()
	st.Declare("b")
	st.Declare("a")
	assert.Equal(t, []string{"a", "b"}, st.Names())
}
