package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStmtString(t *testing.T) {
	tests := []struct {
		name string
		stmt Stmt
		want string
	}{
		{
			name: "function pointer declaration",
			stmt: DeclFuncPtr("fp"),
			want: "void (*fp)();",
		},
		{
			name: "declaration with initializer",
			stmt: DeclInit("i", "int", NewLiteral("0")),
			want: "int i = 0;",
		},
		{
			name: "assignment",
			stmt: AssignName("fp", NewIdent("hello")),
			want: "fp = hello;",
		},
		{
			name: "call without args",
			stmt: Call("f"),
			want: "f();",
		},
		{
			name: "call with args",
			stmt: Call("f", NewIdent("x"), NewLiteral("1")),
			want: "f(x, 1);",
		},
		{
			name: "bare return",
			stmt: ReturnBare(),
			want: "return;",
		},
		{
			name: "value return",
			stmt: ReturnValue(NewBinary(OpAdd, NewIdent("x"), NewLiteral("1"))),
			want: "return x + 1;",
		},
		{
			name: "output parameter store",
			stmt: &Assign{Target: Deref(NewIdent("out")), Value: NewIdent("x")},
			want: "*out = x;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stmt.String())
		})
	}
}

func TestTypeHelpers(t *testing.T) {
	assert.True(t, Void().IsVoid())
	assert.False(t, Type{Kind: KindOther, Name: "int"}.IsVoid())
	assert.False(t, PointerTo(Void()).IsVoid())

	ptr := PointerTo(Type{Kind: KindOther, Name: "int"})
	assert.Equal(t, "int *", ptr.String())
}

func TestCloneIsDeep(t *testing.T) {
	fn := Func("main", Type{Kind: KindOther, Name: "int"}, nil, NewBlock(
		DeclFuncPtr("fp"),
		AssignName("fp", NewIdent("hello")),
		NewIf(NewIdent("c"),
			NewBlock(Call("fp")),
			NewBlock(Call("g", NewIdent("x")))),
		While(NewIdent("c"), NewBlock(Call("fp"))),
		ReturnValue(NewLiteral("0")),
	))
	unit := Unit(fn)

	clone := unit.Clone()
	require.True(t, unit.Equal(clone))

	// Mutating the clone must not show through to the original.
	clone.Functions[0].Body.Stmts[0] = Call("other")
	cond := clone.Functions[0].Body.Stmts[2].(*If)
	cond.Then.Stmts[0].(*CallStmt).Callee = NewIdent("changed")

	assert.False(t, unit.Equal(clone))
	assert.Equal(t, "fp", unit.Functions[0].Body.Stmts[2].(*If).Then.Stmts[0].(*CallStmt).Callee.(*Ident).Name)
}

func TestEqual(t *testing.T) {
	a := Func("f", Void(), nil, NewBlock(Call("g")))
	b := Func("f", Void(), nil, NewBlock(Call("g")))
	c := Func("f", Void(), nil, NewBlock(Call("h")))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Func("f", Void(), []Parameter{{Name: "x", Type: Type{Name: "int"}}}, NewBlock(Call("g")))))
}

func TestExprEqualNil(t *testing.T) {
	assert.True(t, ExprEqual(nil, nil))
	assert.False(t, ExprEqual(NewIdent("x"), nil))
	assert.False(t, ExprEqual(nil, NewIdent("x")))
}

func TestInspectPreOrder(t *testing.T) {
	fn := Func("f", Void(), nil, NewBlock(
		NewIf(NewIdent("c"),
			NewBlock(Call("a")),
			NewBlock(Call("b"))),
		Call("after"),
	))

	var calls []string
	Inspect(fn, func(n Node) bool {
		if call, ok := n.(*CallStmt); ok {
			calls = append(calls, call.Callee.(*Ident).Name)
		}
		return true
	})

	assert.Equal(t, []string{"a", "b", "after"}, calls)
}

func TestInspectSkipsChildren(t *testing.T) {
	fn := Func("f", Void(), nil, NewBlock(
		NewIf(NewIdent("c"), NewBlock(Call("inner")), nil),
		Call("outer"),
	))

	var calls []string
	Inspect(fn, func(n Node) bool {
		switch n := n.(type) {
		case *If:
			return false
		case *CallStmt:
			calls = append(calls, n.Callee.(*Ident).Name)
		}
		return true
	})

	assert.Equal(t, []string{"outer"}, calls)
}

func TestLookup(t *testing.T) {
	unit := Unit(
		Func("hello", Void(), nil, NewBlock()),
		Func("main", Type{Kind: KindOther, Name: "int"}, nil, NewBlock()),
	)

	require.NotNil(t, unit.Lookup("hello"))
	assert.Equal(t, "main", unit.Lookup("main").Name)
	assert.Nil(t, unit.Lookup("missing"))
}
