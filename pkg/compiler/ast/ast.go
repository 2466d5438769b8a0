// Package ast defines the syntax tree produced by the parser.
package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/zurustar/brew/pkg/compiler/token"
)

type Node interface {
	TokenLiteral() string
	String() string
	// Pos is the source range of the tokens the node was built from.
	Pos() token.Span
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root node
type Program struct {
	Statements []Statement
	Span       token.Span
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Span { return p.Span }

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// Statements

// LetStatement: let NAME = VALUE (also `obj NAME = VALUE`)
type LetStatement struct {
	Token token.Token
	Name  string
	Value Expression // nil when there is no initializer
	Span  token.Span
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LetStatement) Pos() token.Span      { return ls.Span }
func (ls *LetStatement) String() string {
	var out bytes.Buffer
	out.WriteString("let " + ls.Name)
	if ls.Value != nil {
		out.WriteString(" = " + ls.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// ExpressionStatement
type ExpressionStatement struct {
	Token      token.Token // The first token of the expression
	Expression Expression
	Span       token.Span
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) Pos() token.Span      { return es.Span }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String() + ";"
	}
	return ""
}

// BlockStatement: { ... }
type BlockStatement struct {
	Token      token.Token // {
	Statements []Statement
	Span       token.Span
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() token.Span      { return bs.Span }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// IfStatement: if COND { ... } else ...
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement // *BlockStatement, *IfStatement or nil
	Span        token.Span
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() token.Span      { return is.Span }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if " + is.Condition.String() + " " + is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else " + is.Alternative.String())
	}
	return out.String()
}

// WhileStatement: while COND { ... }
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
	Span      token.Span
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() token.Span      { return ws.Span }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " " + ws.Body.String()
}

// ForStatement: for (INIT; COND; STEP) { ... }. Any header part may be nil.
type ForStatement struct {
	Token     token.Token
	Init      Statement
	Condition Expression
	Step      Expression
	Body      *BlockStatement
	Span      token.Span
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Pos() token.Span      { return fs.Span }
func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if fs.Init != nil {
		out.WriteString(strings.TrimSuffix(fs.Init.String(), ";"))
	}
	out.WriteString("; ")
	if fs.Condition != nil {
		out.WriteString(fs.Condition.String())
	}
	out.WriteString("; ")
	if fs.Step != nil {
		out.WriteString(fs.Step.String())
	}
	out.WriteString(") " + fs.Body.String())
	return out.String()
}

// FunctionStatement: function NAME(PARAMS) { ... }
type FunctionStatement struct {
	Token    token.Token
	Name     string
	Function *FunctionLiteral
	Span     token.Span
}

func (fs *FunctionStatement) statementNode()       {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *FunctionStatement) Pos() token.Span      { return fs.Span }
func (fs *FunctionStatement) String() string       { return fs.Function.String() }

// ReturnStatement
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare return
	Span  token.Span
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() token.Span      { return rs.Span }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

// BreakStatement
type BreakStatement struct {
	Token token.Token
	Span  token.Span
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStatement) Pos() token.Span      { return bs.Span }
func (bs *BreakStatement) String() string       { return "break;" }

// ContinueStatement
type ContinueStatement struct {
	Token token.Token
	Span  token.Span
}

func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ContinueStatement) Pos() token.Span      { return cs.Span }
func (cs *ContinueStatement) String() string       { return "continue;" }

// TryStatement: try { } catch (NAME) { } finally { }
type TryStatement struct {
	Token     token.Token
	Body      *BlockStatement
	CatchName string          // empty when the catch clause binds nothing
	Catch     *BlockStatement // nil without a catch clause
	Finally   *BlockStatement // nil without a finally clause
	Span      token.Span
}

func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *TryStatement) Pos() token.Span      { return ts.Span }
func (ts *TryStatement) String() string {
	var out bytes.Buffer
	out.WriteString("try " + ts.Body.String())
	if ts.Catch != nil {
		out.WriteString(" catch")
		if ts.CatchName != "" {
			out.WriteString(" (" + ts.CatchName + ")")
		}
		out.WriteString(" " + ts.Catch.String())
	}
	if ts.Finally != nil {
		out.WriteString(" finally " + ts.Finally.String())
	}
	return out.String()
}

// ThrowStatement
type ThrowStatement struct {
	Token token.Token
	Value Expression
	Span  token.Span
}

func (ts *ThrowStatement) statementNode()       {}
func (ts *ThrowStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *ThrowStatement) Pos() token.Span      { return ts.Span }
func (ts *ThrowStatement) String() string       { return "throw " + ts.Value.String() + ";" }

// Expressions

// Identifier
type Identifier struct {
	Token token.Token // token.IDENT
	Value string
	Span  token.Span
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() token.Span      { return i.Span }
func (i *Identifier) String() string       { return i.Value }

// NumberLiteral
type NumberLiteral struct {
	Token token.Token
	Value float64
	Span  token.Span
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) Pos() token.Span      { return nl.Span }
func (nl *NumberLiteral) String() string       { return nl.Token.Literal }

// StringLiteral
type StringLiteral struct {
	Token token.Token
	Value string
	Span  token.Span
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) Pos() token.Span      { return sl.Span }
func (sl *StringLiteral) String() string       { return strconv.Quote(sl.Value) }

// BooleanLiteral
type BooleanLiteral struct {
	Token token.Token
	Value bool
	Span  token.Span
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() token.Span      { return bl.Span }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }

// NullLiteral
type NullLiteral struct {
	Token token.Token
	Span  token.Span
}

func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NullLiteral) Pos() token.Span      { return nl.Span }
func (nl *NullLiteral) String() string       { return "null" }

// ArrayLiteral: [a, b, c]
type ArrayLiteral struct {
	Token    token.Token // [
	Elements []Expression
	Span     token.Span
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) Pos() token.Span      { return al.Span }
func (al *ArrayLiteral) String() string {
	elements := make([]string, len(al.Elements))
	for i, el := range al.Elements {
		elements[i] = el.String()
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

// ObjectPair is one `key: value` entry of an object literal.
type ObjectPair struct {
	Key   string
	Value Expression
}

// ObjectLiteral: {key: value, ...}
type ObjectLiteral struct {
	Token token.Token // {
	Pairs []ObjectPair
	Span  token.Span
}

func (ol *ObjectLiteral) expressionNode()      {}
func (ol *ObjectLiteral) TokenLiteral() string { return ol.Token.Literal }
func (ol *ObjectLiteral) Pos() token.Span      { return ol.Span }
func (ol *ObjectLiteral) String() string {
	pairs := make([]string, len(ol.Pairs))
	for i, p := range ol.Pairs {
		pairs[i] = p.Key + ": " + p.Value.String()
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// FunctionLiteral: function NAME?(PARAMS) { ... }
type FunctionLiteral struct {
	Token      token.Token
	Name       string // empty for anonymous functions
	Parameters []string
	Body       *BlockStatement
	Span       token.Span
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FunctionLiteral) Pos() token.Span      { return fl.Span }
func (fl *FunctionLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("function")
	if fl.Name != "" {
		out.WriteString(" " + fl.Name)
	}
	out.WriteString("(" + strings.Join(fl.Parameters, ", ") + ") ")
	out.WriteString(fl.Body.String())
	return out.String()
}

// CallExpression: FN(ARGS)
type CallExpression struct {
	Token     token.Token // (
	Function  Expression
	Arguments []Expression
	Span      token.Span
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() token.Span      { return ce.Span }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	return ce.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

// IndexExpression: LEFT[INDEX]
type IndexExpression struct {
	Token token.Token // [
	Left  Expression
	Index Expression
	Span  token.Span
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) Pos() token.Span      { return ie.Span }
func (ie *IndexExpression) String() string {
	return "(" + ie.Left.String() + "[" + ie.Index.String() + "])"
}

// MemberExpression: OBJECT.PROPERTY
type MemberExpression struct {
	Token    token.Token // .
	Object   Expression
	Property string
	Span     token.Span
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) Pos() token.Span      { return me.Span }
func (me *MemberExpression) String() string       { return me.Object.String() + "." + me.Property }

// PrefixExpression: -X, !X
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
	Span     token.Span
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) Pos() token.Span      { return pe.Span }
func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// InfixExpression: LEFT OP RIGHT, including the short-circuit && and ||
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
	Span     token.Span
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) Pos() token.Span      { return ie.Span }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// AssignExpression: TARGET = VALUE. Target is an *Identifier, *IndexExpression
// or *MemberExpression.
type AssignExpression struct {
	Token  token.Token // =
	Target Expression
	Value  Expression
	Span   token.Span
}

func (ae *AssignExpression) expressionNode()      {}
func (ae *AssignExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignExpression) Pos() token.Span      { return ae.Span }
func (ae *AssignExpression) String() string {
	return ae.Target.String() + " = " + ae.Value.String()
}
