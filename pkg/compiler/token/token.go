// Package token defines the lexical tokens of brew scripts.
package token

import "fmt"

type TokenType string

// Span is a source range. Lines and columns are 1-indexed; the end position
// points at the last character of the range.
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// To returns a span covering s through end.
func (s Span) To(end Span) Span {
	return Span{
		StartLine:   s.StartLine,
		StartColumn: s.StartColumn,
		EndLine:     end.EndLine,
		EndColumn:   end.EndColumn,
	}
}

// IsZero reports whether the span carries no position.
func (s Span) IsZero() bool {
	return s.StartLine == 0
}

func (s Span) String() string {
	if s.StartLine == s.EndLine || s.EndLine == 0 {
		return fmt.Sprintf("%d:%d", s.StartLine, s.StartColumn)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}

type Token struct {
	Type    TokenType
	Literal string
	Span    Span
}

// Kind is the coarse token classification: keyword, identifier, literal,
// operator or punctuation.
func (t Token) Kind() string {
	switch t.Type {
	case IDENT:
		return "identifier"
	case NUMBER, STRING:
		return "literal"
	case EOF:
		return "end of input"
	case ILLEGAL:
		return "illegal"
	}
	if IsKeyword(t.Type) {
		return "keyword"
	}
	switch t.Type {
	case LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, SEMICOLON, COLON:
		return "punctuation"
	}
	return "operator"
}

// Describe renders the token for diagnostics.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case STRING:
		return fmt.Sprintf("string %q", t.Literal)
	case NUMBER, IDENT:
		return fmt.Sprintf("%s %s", t.Kind(), t.Literal)
	}
	return fmt.Sprintf("'%s'", t.Literal)
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + Literals
	IDENT  = "IDENT"  // counter, console
	NUMBER = "NUMBER" // 123, 4.5
	STRING = "STRING" // "abc"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	BANG     = "!"
	DOT      = "."
	EQ       = "=="
	NOT_EQ   = "!="
	LT       = "<"
	GT       = ">"
	LTE      = "<="
	GTE      = ">="
	AND      = "&&"
	OR       = "||"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"

	// Keywords
	LET      = "let"
	OBJ      = "obj"
	FUNCTION = "function"
	FN       = "fn"
	IF       = "if"
	ELSE     = "else"
	WHILE    = "while"
	FOR      = "for"
	RETURN   = "return"
	BREAK    = "break"
	CONTINUE = "continue"
	TRY      = "try"
	CATCH    = "catch"
	FINALLY  = "finally"
	THROW    = "throw"
	TRUE     = "true"
	FALSE    = "false"
	NULL     = "null"
)

var keywords = map[string]TokenType{
	"let":      LET,
	"obj":      OBJ,
	"function": FUNCTION,
	"fn":       FN,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"try":      TRY,
	"catch":    CATCH,
	"finally":  FINALLY,
	"throw":    THROW,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether t is a reserved word.
func IsKeyword(t TokenType) bool {
	_, ok := keywords[string(t)]
	return ok
}
