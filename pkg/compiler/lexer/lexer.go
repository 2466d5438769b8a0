// Package lexer turns brew source text into tokens.
package lexer

import (
	"fmt"
	"strings"

	"github.com/zurustar/brew/pkg/compiler/token"
)

// Messages of the errors that mean the input ended too early.
const (
	MsgUnterminatedString  = "unterminated string literal"
	MsgUnterminatedComment = "unterminated block comment"
)

// LexError reports an unterminated literal or an unrecognised character.
type LexError struct {
	Message string
	Span    token.Span
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Span.StartLine, e.Span.StartColumn)
}

// Lexer tokenizes brew source code.
type Lexer struct {
	input        []rune
	position     int  // current position in input
	readPosition int  // current reading position (after current char)
	ch           rune // current char
	line         int  // line of ch
	column       int  // column of ch
	prevLine     int  // position of the previously consumed char
	prevColumn   int
}

// New creates a new Lexer.
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// Tokenize lexes the whole source. The returned slice always ends with an EOF
// token. Lexing stops at the first error.
func Tokenize(source string) ([]token.Token, error) {
	l := New(source)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() (token.Token, error) {
	if err := l.skipWhitespace(); err != nil {
		return token.Token{}, err
	}

	startLine, startColumn := l.line, l.column

	switch l.ch {
	case 0:
		if l.position >= len(l.input) {
			return token.Token{Type: token.EOF, Span: token.Span{
				StartLine: startLine, StartColumn: startColumn, EndLine: startLine, EndColumn: startColumn,
			}}, nil
		}
	case '=':
		return l.twoCharToken('=', token.EQ, token.ASSIGN), nil
	case '!':
		return l.twoCharToken('=', token.NOT_EQ, token.BANG), nil
	case '<':
		return l.twoCharToken('=', token.LTE, token.LT), nil
	case '>':
		return l.twoCharToken('=', token.GTE, token.GT), nil
	case '&':
		if l.peekChar() == '&' {
			return l.twoCharToken('&', token.AND, token.ILLEGAL), nil
		}
	case '|':
		if l.peekChar() == '|' {
			return l.twoCharToken('|', token.OR, token.ILLEGAL), nil
		}
	case '+':
		return l.singleCharToken(token.PLUS), nil
	case '-':
		return l.singleCharToken(token.MINUS), nil
	case '*':
		return l.singleCharToken(token.ASTERISK), nil
	case '/':
		return l.singleCharToken(token.SLASH), nil
	case '%':
		return l.singleCharToken(token.PERCENT), nil
	case '.':
		return l.singleCharToken(token.DOT), nil
	case ',':
		return l.singleCharToken(token.COMMA), nil
	case ';':
		return l.singleCharToken(token.SEMICOLON), nil
	case ':':
		return l.singleCharToken(token.COLON), nil
	case '(':
		return l.singleCharToken(token.LPAREN), nil
	case ')':
		return l.singleCharToken(token.RPAREN), nil
	case '{':
		return l.singleCharToken(token.LBRACE), nil
	case '}':
		return l.singleCharToken(token.RBRACE), nil
	case '[':
		return l.singleCharToken(token.LBRACKET), nil
	case ']':
		return l.singleCharToken(token.RBRACKET), nil
	case '"':
		return l.readString()
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			return l.finish(token.LookupIdent(literal), literal, startLine, startColumn), nil
		}
		if isDigit(l.ch) {
			literal := l.readNumber()
			return l.finish(token.NUMBER, literal, startLine, startColumn), nil
		}
	}

	return token.Token{}, &LexError{
		Message: fmt.Sprintf("unexpected character %q", l.ch),
		Span:    token.Span{StartLine: startLine, StartColumn: startColumn, EndLine: startLine, EndColumn: startColumn},
	}
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	l.prevLine, l.prevColumn = l.line, l.column
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// finish builds a token that ends at the previously consumed character.
func (l *Lexer) finish(tokenType token.TokenType, literal string, line, column int) token.Token {
	return token.Token{
		Type:    tokenType,
		Literal: literal,
		Span:    token.Span{StartLine: line, StartColumn: column, EndLine: l.prevLine, EndColumn: l.prevColumn},
	}
}

func (l *Lexer) singleCharToken(tokenType token.TokenType) token.Token {
	line, column := l.line, l.column
	ch := l.ch
	l.readChar()
	return l.finish(tokenType, string(ch), line, column)
}

// twoCharToken emits double when the next character is second, single otherwise.
func (l *Lexer) twoCharToken(second rune, double, single token.TokenType) token.Token {
	line, column := l.line, l.column
	first := l.ch
	if l.peekChar() == second {
		l.readChar()
		l.readChar()
		return l.finish(double, string(first)+string(second), line, column)
	}
	l.readChar()
	return l.finish(single, string(first), line, column)
}

// readIdentifier reads an identifier.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[position:l.position])
}

// readNumber reads an integer or fractional literal. A '.' is part of the
// number only when a digit follows it, so `1.foo` never lexes as a number.
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return string(l.input[position:l.position])
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'"':  '"',
	'\\': '\\',
}

// readString reads a string literal, decoding escape sequences.
func (l *Lexer) readString() (token.Token, error) {
	line, column := l.line, l.column
	var sb strings.Builder
	l.readChar() // consume opening quote
	for {
		if l.atEnd() {
			return token.Token{}, &LexError{
				Message: MsgUnterminatedString,
				Span:    token.Span{StartLine: line, StartColumn: column, EndLine: l.line, EndColumn: l.column},
			}
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.atEnd() {
				continue
			}
			if decoded, ok := escapes[l.ch]; ok {
				sb.WriteRune(decoded)
			} else {
				sb.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return l.finish(token.STRING, sb.String(), line, column), nil
}

// skipWhitespace skips whitespace characters and comments.
func (l *Lexer) skipWhitespace() error {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && !l.atEnd() {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			line, column := l.line, l.column
			l.readChar() // consume /
			l.readChar() // consume *
			for !(l.ch == '*' && l.peekChar() == '/') {
				if l.atEnd() {
					return &LexError{
						Message: MsgUnterminatedComment,
						Span:    token.Span{StartLine: line, StartColumn: column, EndLine: l.line, EndColumn: l.column},
					}
				}
				l.readChar()
			}
			l.readChar() // consume *
			l.readChar() // consume /
		default:
			return nil
		}
	}
}

// isLetter checks if a character can start an identifier.
func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch >= 0x80
}

// isDigit checks if a character is a digit.
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
