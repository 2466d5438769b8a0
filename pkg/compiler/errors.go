package compiler

import (
	"fmt"
	"strings"
)

// CompileError represents a structured front-end error with location information.
// It carries the phase that rejected the source and a rendered excerpt of the
// offending lines.
type CompileError struct {
	// Phase indicates which compilation phase generated the error.
	// Valid values: "lexer", "parser"
	Phase string

	// Message is the human-readable error description.
	Message string

	// Line is the 1-indexed line number where the error occurred.
	Line int

	// Column is the 1-indexed column number where the error occurred.
	Column int

	// Context contains the source code around the error location.
	// This includes 2 lines before and after the error line,
	// with a pointer (^) indicating the error column.
	Context string

	// Err is the underlying *lexer.LexError or *parser.ParseError.
	Err error
}

// Error implements the error interface.
// It returns a formatted error message including phase, location, message, and context.
func (e *CompileError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s error at line %d, column %d: %s\n%s",
			e.Phase, e.Line, e.Column, e.Message, e.Context)
	}
	return fmt.Sprintf("%s error at line %d, column %d: %s",
		e.Phase, e.Line, e.Column, e.Message)
}

// Unwrap exposes the phase-specific error to errors.As.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// NewLexerErrorWithContext creates a new CompileError for lexer phase errors with source context.
func NewLexerErrorWithContext(message string, line, column int, source string) *CompileError {
	return &CompileError{
		Phase:   "lexer",
		Message: message,
		Line:    line,
		Column:  column,
		Context: GenerateErrorContext(source, line, column),
	}
}

// NewParserErrorWithContext creates a new CompileError for parser phase errors with source context.
func NewParserErrorWithContext(message string, line, column int, source string) *CompileError {
	return &CompileError{
		Phase:   "parser",
		Message: message,
		Line:    line,
		Column:  column,
		Context: GenerateErrorContext(source, line, column),
	}
}

// GenerateErrorContext generates source code context around an error location.
// It includes 2 lines before and 2 lines after the error line, with line numbers
// and a pointer (^) indicating the error column.
//
// Example output:
//
//	  2 | let x = 5;
//	  3 | let y = 10;
//	> 4 | let z = ;
//	    |         ^
//	  5 | let w = 20;
//	  6 | let v = 30;
func GenerateErrorContext(source string, line, column int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	// 2 lines before and 2 after, 0-indexed
	start := max(line-3, 0)
	end := min(line+2, len(lines))

	var buf strings.Builder
	lineNumWidth := len(fmt.Sprintf("%d", end))

	for i := start; i < end; i++ {
		lineNum := i + 1
		lineContent := strings.TrimRight(lines[i], "\r")

		if lineNum != line {
			fmt.Fprintf(&buf, "  %*d | %s\n", lineNumWidth, lineNum, lineContent)
			continue
		}

		fmt.Fprintf(&buf, "> %*d | %s\n", lineNumWidth, lineNum, lineContent)
		// "> " + lineNumWidth + " | "
		pointerIndent := 2 + lineNumWidth + 3
		fmt.Fprintf(&buf, "%s%s^\n", strings.Repeat(" ", pointerIndent), strings.Repeat(" ", max(column-1, 0)))
	}

	return buf.String()
}
