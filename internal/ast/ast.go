package ast

import "strings"

// TypeKind classifies the declared type of a variable or parameter.
// The transformation passes only care whether a type is a function
// pointer; everything else is carried through as-is.
type TypeKind int

const (
	// KindOther is any type the passes do not interpret.
	KindOther TypeKind = iota
	// KindFuncPtr is a pointer-to-function type.
	KindFuncPtr
)

func (k TypeKind) String() string {
	switch k {
	case KindFuncPtr:
		return "funcptr"
	case KindOther:
		return "other"
	default:
		return "?"
	}
}

// Type describes a declared type. Name holds the textual base type
// ("int", "void", ...); Pointer marks a single level of indirection,
// which is all the output-parameter lowering needs.
type Type struct {
	Kind    TypeKind
	Name    string
	Pointer bool
}

// Void returns the void type.
func Void() Type {
	return Type{Kind: KindOther, Name: "void"}
}

// IsVoid reports whether t is the non-pointer void type.
func (t Type) IsVoid() bool {
	return t.Kind == KindOther && t.Name == "void" && !t.Pointer
}

// PointerTo returns a pointer type to the given base type.
func PointerTo(base Type) Type {
	return Type{Kind: base.Kind, Name: base.Name, Pointer: true}
}

func (t Type) String() string {
	if t.Kind == KindFuncPtr {
		return "void (*)()"
	}
	if t.Pointer {
		return t.Name + " *"
	}
	return t.Name
}

// TranslationUnit is an ordered sequence of function definitions.
// It owns every function and lives for one conversion request.
type TranslationUnit struct {
	Functions []*FunctionDefinition
}

// Lookup returns the function with the given name, or nil.
func (u *TranslationUnit) Lookup(name string) *FunctionDefinition {
	for _, fn := range u.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

func (u *TranslationUnit) String() string {
	var b strings.Builder
	for i, fn := range u.Functions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fn.String())
	}
	return b.String()
}

// FunctionDefinition is a named function with its signature and body.
// Names are unique within a translation unit. Both transformation
// passes mutate definitions in place.
type FunctionDefinition struct {
	Name       string
	ReturnType Type
	Params     []Parameter
	Body       *Block
}

func (f *FunctionDefinition) String() string {
	var b strings.Builder
	b.WriteString(f.ReturnType.String())
	b.WriteString(" ")
	b.WriteString(f.Name)
	b.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")\n")
	b.WriteString(f.Body.String())
	return b.String()
}

// Parameter is a single named function parameter.
type Parameter struct {
	Name string
	Type Type
}

func (p Parameter) String() string {
	if strings.HasSuffix(p.Type.String(), "*") {
		return p.Type.String() + p.Name
	}
	return p.Type.String() + " " + p.Name
}

// Block is an ordered statement sequence. Order is execution order.
type Block struct {
	Stmts []Stmt
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Stmts {
		for _, line := range strings.Split(s.String(), "\n") {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// Stmt is the closed set of statement variants. Every pass switches
// exhaustively over the concrete types below.
type Stmt interface {
	isStmt()
	String() string
}

// VarDecl declares a local variable. Init is optional and carried
// through unmodified; the passes never interpret it.
type VarDecl struct {
	Name string
	Type Type
	Init Expr
}

func (*VarDecl) isStmt() {}
func (s *VarDecl) String() string {
	out := s.Type.String() + " " + s.Name
	if s.Type.Kind == KindFuncPtr {
		out = "void (*" + s.Name + ")()"
	}
	if s.Init != nil {
		out += " = " + s.Init.String()
	}
	return out + ";"
}

// Assign stores Value into Target. Target is an expression so that
// both plain identifiers and output-parameter dereferences can appear
// on the left; the resolver only interprets identifier targets.
type Assign struct {
	Target Expr
	Value  Expr
}

func (*Assign) isStmt() {}
func (s *Assign) String() string {
	return s.Target.String() + " = " + s.Value.String() + ";"
}

// CallStmt is a call in statement position. Callee is an identifier
// reference, not yet resolved to a definition.
type CallStmt struct {
	Callee Expr
	Args   []Expr
}

func (*CallStmt) isStmt() {}
func (s *CallStmt) String() string {
	var b strings.Builder
	b.WriteString(s.Callee.String())
	b.WriteString("(")
	for i, a := range s.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(");")
	return b.String()
}

// If is a conditional with an optional else block.
type If struct {
	Cond Expr
	Then *Block
	Else *Block
}

func (*If) isStmt() {}
func (s *If) String() string {
	out := "if (" + s.Cond.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// LoopKind distinguishes the three loop forms. The resolver treats
// them identically.
type LoopKind int

const (
	LoopWhile LoopKind = iota
	LoopDoWhile
	LoopFor
)

func (k LoopKind) String() string {
	switch k {
	case LoopWhile:
		return "while"
	case LoopDoWhile:
		return "do-while"
	case LoopFor:
		return "for"
	default:
		return "?"
	}
}

// Loop is a while, do-while or for loop. For loops carry only their
// condition here; init and post clauses belong to the external parser's
// desugaring.
type Loop struct {
	Kind LoopKind
	Cond Expr
	Body *Block
}

func (*Loop) isStmt() {}
func (s *Loop) String() string {
	cond := ""
	if s.Cond != nil {
		cond = s.Cond.String()
	}
	switch s.Kind {
	case LoopDoWhile:
		return "do " + s.Body.String() + " while (" + cond + ");"
	case LoopFor:
		return "for (;" + cond + ";) " + s.Body.String()
	default:
		return "while (" + cond + ") " + s.Body.String()
	}
}

// Return exits the enclosing function. Value is nil for a bare return.
type Return struct {
	Value Expr
}

func (*Return) isStmt() {}
func (s *Return) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// BlockStmt is a nested block in statement position.
type BlockStmt struct {
	Block *Block
}

func (*BlockStmt) isStmt() {}
func (s *BlockStmt) String() string {
	return s.Block.String()
}

// Expr is the closed set of expression variants.
type Expr interface {
	isExpr()
	String() string
}

// Ident is a reference to a variable or function by name.
type Ident struct {
	Name string
}

func (*Ident) isExpr() {}
func (e *Ident) String() string {
	return e.Name
}

// Literal is a constant carried as its source text.
type Literal struct {
	Value string
}

func (*Literal) isExpr() {}
func (e *Literal) String() string {
	return e.Value
}

// UnaryOp enumerates unary operators the passes can produce or inspect.
type UnaryOp int

const (
	OpDeref UnaryOp = iota
	OpAddr
	OpNot
	OpNeg
)

func (op UnaryOp) String() string {
	switch op {
	case OpDeref:
		return "*"
	case OpAddr:
		return "&"
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}

// Unary applies a unary operator to an operand. The return lowerer
// synthesizes OpDeref nodes for output-parameter stores.
type Unary struct {
	Op UnaryOp
	X  Expr
}

func (*Unary) isExpr() {}
func (e *Unary) String() string {
	return e.Op.String() + e.X.String()
}

// BinaryOp enumerates binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpGt
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	default:
		return "?"
	}
}

// Binary is a binary expression.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*Binary) isExpr() {}
func (e *Binary) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}

// Opaque is an expression the model does not interpret, carried
// through every pass as its original source text.
type Opaque struct {
	Text string
}

func (*Opaque) isExpr() {}
func (e *Opaque) String() string {
	return e.Text
}
