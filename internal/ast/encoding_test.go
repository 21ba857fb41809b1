package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		unit *TranslationUnit
	}{
		{
			name: "pointer declaration and indirect call",
			unit: Unit(Func("main", Type{Kind: KindOther, Name: "int"}, nil, NewBlock(
				DeclFuncPtr("fp"),
				AssignName("fp", NewIdent("hello")),
				Call("fp"),
				ReturnValue(NewLiteral("0")),
			))),
		},
		{
			name: "control flow",
			unit: Unit(Func("f", Void(), []Parameter{{Name: "x", Type: Type{Kind: KindOther, Name: "int"}}}, NewBlock(
				NewIf(NewBinary(OpEq, NewIdent("x"), NewLiteral("0")),
					NewBlock(Call("a")),
					NewBlock(Call("b", NewIdent("x")))),
				While(NewIdent("x"), NewBlock(Call("c"))),
				DoWhile(NewIdent("x"), NewBlock()),
				For(NewBinary(OpLt, NewIdent("x"), NewLiteral("2")), NewBlock()),
				Nested(NewBlock(ReturnBare())),
			))),
		},
		{
			name: "expressions",
			unit: Unit(Func("g", Type{Kind: KindOther, Name: "int"}, nil, NewBlock(
				DeclInit("i", "int", NewOpaque("sizeof(int)")),
				&Assign{Target: Deref(NewIdent("out")), Value: NewBinary(OpAdd, NewIdent("x"), NewLiteral("1"))},
				&Assign{Target: NewIdent("p"), Value: &Unary{Op: OpAddr, X: NewIdent("x")}},
				ReturnValue(nil),
			))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeUnit(tt.unit)
			require.NoError(t, err)

			decoded, err := DecodeUnit(data)
			require.NoError(t, err)
			require.True(t, tt.unit.Equal(decoded), "decoded tree differs:\n%s\nvs\n%s", tt.unit, decoded)
		})
	}
}

func TestDecodeRejectsUnknownKinds(t *testing.T) {
	_, err := DecodeUnit([]byte(`{"Functions":[{"Name":"f","Body":[{"kind":"goto"}]}]}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown statement kind")
}

func TestFuncPtrTypeRoundTrip(t *testing.T) {
	data, err := EncodeUnit(Unit(Func("f", Void(), nil, NewBlock(DeclFuncPtr("fp")))))
	require.NoError(t, err)

	decoded, err := DecodeUnit(data)
	require.NoError(t, err)
	decl := decoded.Functions[0].Body.Stmts[0].(*VarDecl)
	require.Equal(t, KindFuncPtr, decl.Type.Kind)
}
