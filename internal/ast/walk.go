package ast

// Node is implemented by every tree node.
type Node interface {
	String() string
}

// Inspect traverses the tree rooted at n in depth-first pre-order,
// calling f for each node. If f returns false the node's children are
// skipped. Mutations through the visited pointers are visible to the
// remainder of the walk.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *TranslationUnit:
		for _, fn := range n.Functions {
			Inspect(fn, f)
		}
	case *FunctionDefinition:
		inspectBlock(n.Body, f)
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
	case *VarDecl:
		inspectExpr(n.Init, f)
	case *Assign:
		inspectExpr(n.Target, f)
		inspectExpr(n.Value, f)
	case *CallStmt:
		inspectExpr(n.Callee, f)
		for _, a := range n.Args {
			inspectExpr(a, f)
		}
	case *If:
		inspectExpr(n.Cond, f)
		inspectBlock(n.Then, f)
		inspectBlock(n.Else, f)
	case *Loop:
		inspectExpr(n.Cond, f)
		inspectBlock(n.Body, f)
	case *Return:
		inspectExpr(n.Value, f)
	case *BlockStmt:
		inspectBlock(n.Block, f)
	case *Unary:
		inspectExpr(n.X, f)
	case *Binary:
		inspectExpr(n.Left, f)
		inspectExpr(n.Right, f)
	}
}

func inspectBlock(b *Block, f func(Node) bool) {
	if b == nil {
		return
	}
	Inspect(b, f)
}

func inspectExpr(e Expr, f func(Node) bool) {
	if e == nil {
		return
	}
	Inspect(e, f)
}
