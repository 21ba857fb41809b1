package ast

// Helper constructors. Tests and embedders build trees with these
// instead of spelling out struct literals.

// NewIdent creates an identifier reference.
func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}

// NewLiteral creates a literal from its source text.
func NewLiteral(text string) *Literal {
	return &Literal{Value: text}
}

// NewOpaque creates an uninterpreted expression node.
func NewOpaque(text string) *Opaque {
	return &Opaque{Text: text}
}

// Deref creates a pointer dereference of x.
func Deref(x Expr) *Unary {
	return &Unary{Op: OpDeref, X: x}
}

// NewBinary creates a binary expression.
func NewBinary(op BinaryOp, left, right Expr) *Binary {
	return &Binary{Op: op, Left: left, Right: right}
}

// NewBlock creates a block from the given statements.
func NewBlock(stmts ...Stmt) *Block {
	return &Block{Stmts: stmts}
}

// DeclFuncPtr declares a function-pointer variable.
func DeclFuncPtr(name string) *VarDecl {
	return &VarDecl{Name: name, Type: Type{Kind: KindFuncPtr}}
}

// Decl declares a variable of an uninterpreted type.
func Decl(name, typeName string) *VarDecl {
	return &VarDecl{Name: name, Type: Type{Kind: KindOther, Name: typeName}}
}

// DeclInit declares a variable with an initializer.
func DeclInit(name, typeName string, init Expr) *VarDecl {
	return &VarDecl{Name: name, Type: Type{Kind: KindOther, Name: typeName}, Init: init}
}

// AssignName assigns value to a plain identifier target.
func AssignName(target string, value Expr) *Assign {
	return &Assign{Target: NewIdent(target), Value: value}
}

// Call creates a call statement through the named callee.
func Call(callee string, args ...Expr) *CallStmt {
	return &CallStmt{Callee: NewIdent(callee), Args: args}
}

// NewIf creates a conditional; els may be nil.
func NewIf(cond Expr, then, els *Block) *If {
	return &If{Cond: cond, Then: then, Else: els}
}

// While creates a while loop.
func While(cond Expr, body *Block) *Loop {
	return &Loop{Kind: LoopWhile, Cond: cond, Body: body}
}

// DoWhile creates a do-while loop.
func DoWhile(cond Expr, body *Block) *Loop {
	return &Loop{Kind: LoopDoWhile, Cond: cond, Body: body}
}

// For creates a for loop.
func For(cond Expr, body *Block) *Loop {
	return &Loop{Kind: LoopFor, Cond: cond, Body: body}
}

// ReturnValue creates a value return.
func ReturnValue(value Expr) *Return {
	return &Return{Value: value}
}

// ReturnBare creates a bare return.
func ReturnBare() *Return {
	return &Return{}
}

// Nested wraps a block in statement position.
func Nested(block *Block) *BlockStmt {
	return &BlockStmt{Block: block}
}

// Func creates a function definition.
func Func(name string, ret Type, params []Parameter, body *Block) *FunctionDefinition {
	return &FunctionDefinition{Name: name, ReturnType: ret, Params: params, Body: body}
}

// Unit creates a translation unit from the given functions.
func Unit(fns ...*FunctionDefinition) *TranslationUnit {
	return &TranslationUnit{Functions: fns}
}
