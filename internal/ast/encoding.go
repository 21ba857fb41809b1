package ast

import (
	"encoding/json"
	"fmt"
)

// JSON interchange format. The external parser hands trees to cfix as
// JSON and the external generator consumes the transformed JSON; each
// statement and expression node carries a "kind" discriminator.

type jsonStmt struct {
	Kind   string            `json:"kind"`
	Name   string            `json:"name,omitempty"`
	Type   *Type             `json:"type,omitempty"`
	Init   json.RawMessage   `json:"init,omitempty"`
	Target json.RawMessage   `json:"target,omitempty"`
	Value  json.RawMessage   `json:"value,omitempty"`
	Callee json.RawMessage   `json:"callee,omitempty"`
	Args   []json.RawMessage `json:"args"`
	Cond   json.RawMessage   `json:"cond,omitempty"`
	Then   *Block            `json:"then,omitempty"`
	Else   *Block            `json:"else,omitempty"`
	Loop   string            `json:"loop,omitempty"`
	Body   *Block            `json:"body,omitempty"`
	Block  *Block            `json:"block,omitempty"`
}

type jsonExpr struct {
	Kind  string          `json:"kind"`
	Name  string          `json:"name,omitempty"`
	Value string          `json:"value,omitempty"`
	Op    string          `json:"op,omitempty"`
	X     json.RawMessage `json:"x,omitempty"`
	Left  json.RawMessage `json:"left,omitempty"`
	Right json.RawMessage `json:"right,omitempty"`
	Text  string          `json:"text,omitempty"`
}

// MarshalJSON encodes the block's statements with kind discriminators.
func (b *Block) MarshalJSON() ([]byte, error) {
	stmts := make([]json.RawMessage, len(b.Stmts))
	for i, s := range b.Stmts {
		raw, err := marshalStmt(s)
		if err != nil {
			return nil, err
		}
		stmts[i] = raw
	}
	return json.Marshal(stmts)
}

// UnmarshalJSON decodes a statement list into the block.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	b.Stmts = make([]Stmt, len(raws))
	for i, raw := range raws {
		s, err := unmarshalStmt(raw)
		if err != nil {
			return err
		}
		b.Stmts[i] = s
	}
	return nil
}

func marshalStmt(s Stmt) (json.RawMessage, error) {
	var js jsonStmt
	var err error
	switch s := s.(type) {
	case *VarDecl:
		t := s.Type
		js = jsonStmt{Kind: "decl", Name: s.Name, Type: &t}
		if js.Init, err = marshalExpr(s.Init); err != nil {
			return nil, err
		}
	case *Assign:
		js = jsonStmt{Kind: "assign"}
		if js.Target, err = marshalExpr(s.Target); err != nil {
			return nil, err
		}
		if js.Value, err = marshalExpr(s.Value); err != nil {
			return nil, err
		}
	case *CallStmt:
		js = jsonStmt{Kind: "call"}
		if js.Callee, err = marshalExpr(s.Callee); err != nil {
			return nil, err
		}
		js.Args = make([]json.RawMessage, 0, len(s.Args))
		for _, a := range s.Args {
			raw, err := marshalExpr(a)
			if err != nil {
				return nil, err
			}
			js.Args = append(js.Args, raw)
		}
	case *If:
		js = jsonStmt{Kind: "if", Then: s.Then, Else: s.Else}
		if js.Cond, err = marshalExpr(s.Cond); err != nil {
			return nil, err
		}
	case *Loop:
		js = jsonStmt{Kind: "loop", Loop: s.Kind.String(), Body: s.Body}
		if js.Cond, err = marshalExpr(s.Cond); err != nil {
			return nil, err
		}
	case *Return:
		js = jsonStmt{Kind: "return"}
		if js.Value, err = marshalExpr(s.Value); err != nil {
			return nil, err
		}
	case *BlockStmt:
		js = jsonStmt{Kind: "block", Block: s.Block}
	default:
		return nil, fmt.Errorf("unknown statement type %T", s)
	}
	return json.Marshal(js)
}

func unmarshalStmt(raw json.RawMessage) (Stmt, error) {
	var js jsonStmt
	if err := json.Unmarshal(raw, &js); err != nil {
		return nil, err
	}
	switch js.Kind {
	case "decl":
		init, err := unmarshalExpr(js.Init)
		if err != nil {
			return nil, err
		}
		var t Type
		if js.Type != nil {
			t = *js.Type
		}
		return &VarDecl{Name: js.Name, Type: t, Init: init}, nil
	case "assign":
		target, err := unmarshalExpr(js.Target)
		if err != nil {
			return nil, err
		}
		value, err := unmarshalExpr(js.Value)
		if err != nil {
			return nil, err
		}
		return &Assign{Target: target, Value: value}, nil
	case "call":
		callee, err := unmarshalExpr(js.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]Expr, 0, len(js.Args))
		for _, raw := range js.Args {
			e, err := unmarshalExpr(raw)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
		return &CallStmt{Callee: callee, Args: args}, nil
	case "if":
		cond, err := unmarshalExpr(js.Cond)
		if err != nil {
			return nil, err
		}
		return &If{Cond: cond, Then: js.Then, Else: js.Else}, nil
	case "loop":
		cond, err := unmarshalExpr(js.Cond)
		if err != nil {
			return nil, err
		}
		kind, err := parseLoopKind(js.Loop)
		if err != nil {
			return nil, err
		}
		return &Loop{Kind: kind, Cond: cond, Body: js.Body}, nil
	case "return":
		value, err := unmarshalExpr(js.Value)
		if err != nil {
			return nil, err
		}
		return &Return{Value: value}, nil
	case "block":
		return &BlockStmt{Block: js.Block}, nil
	default:
		return nil, fmt.Errorf("unknown statement kind %q", js.Kind)
	}
}

func marshalExpr(e Expr) (json.RawMessage, error) {
	if e == nil {
		return nil, nil
	}
	var je jsonExpr
	var err error
	switch e := e.(type) {
	case *Ident:
		je = jsonExpr{Kind: "ident", Name: e.Name}
	case *Literal:
		je = jsonExpr{Kind: "literal", Value: e.Value}
	case *Unary:
		je = jsonExpr{Kind: "unary", Op: e.Op.String()}
		if je.X, err = marshalExpr(e.X); err != nil {
			return nil, err
		}
	case *Binary:
		je = jsonExpr{Kind: "binary", Op: e.Op.String()}
		if je.Left, err = marshalExpr(e.Left); err != nil {
			return nil, err
		}
		if je.Right, err = marshalExpr(e.Right); err != nil {
			return nil, err
		}
	case *Opaque:
		je = jsonExpr{Kind: "opaque", Text: e.Text}
	default:
		return nil, fmt.Errorf("unknown expression type %T", e)
	}
	return json.Marshal(je)
}

func unmarshalExpr(raw json.RawMessage) (Expr, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var je jsonExpr
	if err := json.Unmarshal(raw, &je); err != nil {
		return nil, err
	}
	switch je.Kind {
	case "ident":
		return &Ident{Name: je.Name}, nil
	case "literal":
		return &Literal{Value: je.Value}, nil
	case "unary":
		x, err := unmarshalExpr(je.X)
		if err != nil {
			return nil, err
		}
		op, err := parseUnaryOp(je.Op)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, X: x}, nil
	case "binary":
		left, err := unmarshalExpr(je.Left)
		if err != nil {
			return nil, err
		}
		right, err := unmarshalExpr(je.Right)
		if err != nil {
			return nil, err
		}
		op, err := parseBinaryOp(je.Op)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, Left: left, Right: right}, nil
	case "opaque":
		return &Opaque{Text: je.Text}, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", je.Kind)
	}
}

func parseLoopKind(s string) (LoopKind, error) {
	switch s {
	case "while":
		return LoopWhile, nil
	case "do-while":
		return LoopDoWhile, nil
	case "for":
		return LoopFor, nil
	default:
		return 0, fmt.Errorf("unknown loop kind %q", s)
	}
}

func parseUnaryOp(s string) (UnaryOp, error) {
	switch s {
	case "*":
		return OpDeref, nil
	case "&":
		return OpAddr, nil
	case "!":
		return OpNot, nil
	case "-":
		return OpNeg, nil
	default:
		return 0, fmt.Errorf("unknown unary operator %q", s)
	}
}

func parseBinaryOp(s string) (BinaryOp, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*":
		return OpMul, nil
	case "/":
		return OpDiv, nil
	case "==":
		return OpEq, nil
	case "!=":
		return OpNeq, nil
	case "<":
		return OpLt, nil
	case ">":
		return OpGt, nil
	default:
		return 0, fmt.Errorf("unknown binary operator %q", s)
	}
}

// MarshalJSON encodes t with its kind spelled out.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Name    string `json:"name,omitempty"`
		Pointer bool   `json:"pointer,omitempty"`
	}{Kind: t.Kind.String(), Name: t.Name, Pointer: t.Pointer})
}

// UnmarshalJSON decodes a type descriptor.
func (t *Type) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind    string `json:"kind"`
		Name    string `json:"name"`
		Pointer bool   `json:"pointer"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case "funcptr":
		t.Kind = KindFuncPtr
	case "other", "":
		t.Kind = KindOther
	default:
		return fmt.Errorf("unknown type kind %q", raw.Kind)
	}
	t.Name = raw.Name
	t.Pointer = raw.Pointer
	return nil
}

// EncodeUnit serializes a translation unit to indented JSON.
func EncodeUnit(u *TranslationUnit) ([]byte, error) {
	return json.MarshalIndent(u, "", "  ")
}

// DecodeUnit deserializes a translation unit from JSON.
func DecodeUnit(data []byte) (*TranslationUnit, error) {
	var u TranslationUnit
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
