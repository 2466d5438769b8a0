// Package compiler provides the front-end pipeline for brew scripts.
// It transforms source code into an AST through two phases:
// 1. Lexer: Tokenization
// 2. Parser: AST generation
//
// Both phases stop at the first error, which is reported as a *CompileError
// carrying an excerpt of the surrounding source.
package compiler

import (
	"errors"
	"fmt"

	"github.com/zurustar/brew/pkg/compiler/ast"
	"github.com/zurustar/brew/pkg/compiler/lexer"
	"github.com/zurustar/brew/pkg/compiler/parser"
	"github.com/zurustar/brew/pkg/compiler/token"
	"github.com/zurustar/brew/pkg/script"
)

// Compile lexes and parses source code.
// It chains the lexer → parser pipeline; evaluation never starts on failure.
func Compile(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, wrapError(err, source)
	}

	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, wrapError(err, source)
	}

	return program, nil
}

// CompileScript compiles a script loaded by script.Loader.
func CompileScript(s *script.Script) (*ast.Program, error) {
	program, err := Compile(s.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.FileName, err)
	}
	return program, nil
}

// wrapError converts a phase error into a CompileError with source context.
func wrapError(err error, source string) error {
	var lexErr *lexer.LexError
	if errors.As(err, &lexErr) {
		ce := NewLexerErrorWithContext(lexErr.Message, lexErr.Span.StartLine, lexErr.Span.StartColumn, source)
		ce.Err = err
		return ce
	}

	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		message := fmt.Sprintf("expected %s, found %s", parseErr.Expected, parseErr.Found.Describe())
		ce := NewParserErrorWithContext(message, parseErr.Span.StartLine, parseErr.Span.StartColumn, source)
		ce.Err = err
		return ce
	}

	return err
}

// IsIncomplete reports whether err means the source stopped in the middle of
// a construct: an open block, call or literal, or an unterminated string or
// comment. Interactive callers read another line instead of reporting it.
func IsIncomplete(err error) bool {
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Found.Type == token.EOF
	}

	var lexErr *lexer.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Message == lexer.MsgUnterminatedString || lexErr.Message == lexer.MsgUnterminatedComment
	}
	return false
}
