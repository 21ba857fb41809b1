package ast

// Clone returns a deep copy of the unit. Trees published to the parse
// cache are immutable; passes transform a clone, never the cached tree.
func (u *TranslationUnit) Clone() *TranslationUnit {
	if u == nil {
		return nil
	}
	out := &TranslationUnit{Functions: make([]*FunctionDefinition, len(u.Functions))}
	for i, fn := range u.Functions {
		out.Functions[i] = fn.Clone()
	}
	return out
}

// Clone returns a deep copy of the function definition.
func (f *FunctionDefinition) Clone() *FunctionDefinition {
	if f == nil {
		return nil
	}
	out := &FunctionDefinition{
		Name:       f.Name,
		ReturnType: f.ReturnType,
		Params:     make([]Parameter, len(f.Params)),
		Body:       cloneBlock(f.Body),
	}
	copy(out.Params, f.Params)
	return out
}

func cloneBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	out := &Block{Stmts: make([]Stmt, len(b.Stmts))}
	for i, s := range b.Stmts {
		out.Stmts[i] = cloneStmt(s)
	}
	return out
}

func cloneStmt(s Stmt) Stmt {
	switch s := s.(type) {
	case *VarDecl:
		return &VarDecl{Name: s.Name, Type: s.Type, Init: cloneExpr(s.Init)}
	case *Assign:
		return &Assign{Target: cloneExpr(s.Target), Value: cloneExpr(s.Value)}
	case *CallStmt:
		return &CallStmt{Callee: cloneExpr(s.Callee), Args: cloneExprs(s.Args)}
	case *If:
		return &If{Cond: cloneExpr(s.Cond), Then: cloneBlock(s.Then), Else: cloneBlock(s.Else)}
	case *Loop:
		return &Loop{Kind: s.Kind, Cond: cloneExpr(s.Cond), Body: cloneBlock(s.Body)}
	case *Return:
		return &Return{Value: cloneExpr(s.Value)}
	case *BlockStmt:
		return &BlockStmt{Block: cloneBlock(s.Block)}
	default:
		return s
	}
}

func cloneExpr(e Expr) Expr {
	switch e := e.(type) {
	case nil:
		return nil
	case *Ident:
		return &Ident{Name: e.Name}
	case *Literal:
		return &Literal{Value: e.Value}
	case *Unary:
		return &Unary{Op: e.Op, X: cloneExpr(e.X)}
	case *Binary:
		return &Binary{Op: e.Op, Left: cloneExpr(e.Left), Right: cloneExpr(e.Right)}
	case *Opaque:
		return &Opaque{Text: e.Text}
	default:
		return e
	}
}

func cloneExprs(es []Expr) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = cloneExpr(e)
	}
	return out
}

// Equal reports structural equality of two units.
func (u *TranslationUnit) Equal(other *TranslationUnit) bool {
	if u == nil || other == nil {
		return u == other
	}
	if len(u.Functions) != len(other.Functions) {
		return false
	}
	for i := range u.Functions {
		if !u.Functions[i].Equal(other.Functions[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two function definitions.
func (f *FunctionDefinition) Equal(other *FunctionDefinition) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.Name != other.Name || f.ReturnType != other.ReturnType {
		return false
	}
	if len(f.Params) != len(other.Params) {
		return false
	}
	for i := range f.Params {
		if f.Params[i] != other.Params[i] {
			return false
		}
	}
	return blocksEqual(f.Body, other.Body)
}

func blocksEqual(a, b *Block) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Stmts) != len(b.Stmts) {
		return false
	}
	for i := range a.Stmts {
		if !StmtEqual(a.Stmts[i], b.Stmts[i]) {
			return false
		}
	}
	return true
}

// StmtEqual reports structural equality of two statements.
func StmtEqual(a, b Stmt) bool {
	switch a := a.(type) {
	case *VarDecl:
		o, ok := b.(*VarDecl)
		return ok && a.Name == o.Name && a.Type == o.Type && ExprEqual(a.Init, o.Init)
	case *Assign:
		o, ok := b.(*Assign)
		return ok && ExprEqual(a.Target, o.Target) && ExprEqual(a.Value, o.Value)
	case *CallStmt:
		o, ok := b.(*CallStmt)
		if !ok || !ExprEqual(a.Callee, o.Callee) || len(a.Args) != len(o.Args) {
			return false
		}
		for i := range a.Args {
			if !ExprEqual(a.Args[i], o.Args[i]) {
				return false
			}
		}
		return true
	case *If:
		o, ok := b.(*If)
		return ok && ExprEqual(a.Cond, o.Cond) && blocksEqual(a.Then, o.Then) && blocksEqual(a.Else, o.Else)
	case *Loop:
		o, ok := b.(*Loop)
		return ok && a.Kind == o.Kind && ExprEqual(a.Cond, o.Cond) && blocksEqual(a.Body, o.Body)
	case *Return:
		o, ok := b.(*Return)
		return ok && ExprEqual(a.Value, o.Value)
	case *BlockStmt:
		o, ok := b.(*BlockStmt)
		return ok && blocksEqual(a.Block, o.Block)
	default:
		return false
	}
}

// ExprEqual reports structural equality of two expressions. Two nil
// expressions are equal.
func ExprEqual(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Ident:
		o, ok := b.(*Ident)
		return ok && a.Name == o.Name
	case *Literal:
		o, ok := b.(*Literal)
		return ok && a.Value == o.Value
	case *Unary:
		o, ok := b.(*Unary)
		return ok && a.Op == o.Op && ExprEqual(a.X, o.X)
	case *Binary:
		o, ok := b.(*Binary)
		return ok && a.Op == o.Op && ExprEqual(a.Left, o.Left) && ExprEqual(a.Right, o.Right)
	case *Opaque:
		o, ok := b.(*Opaque)
		return ok && a.Text == o.Text
	default:
		return false
	}
}
