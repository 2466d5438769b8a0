package compiler

import (
	"strings"
	"testing"
)

// TestCompileError_Error tests the Error() method of CompileError.
func TestCompileError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CompileError
		contains []string
	}{
		{
			name: "lexer error without context",
			err: &CompileError{
				Phase:   "lexer",
				Message: "unexpected character '@'",
				Line:    5,
				Column:  10,
			},
			contains: []string{"lexer error", "line 5", "column 10", "unexpected character '@'"},
		},
		{
			name: "parser error without context",
			err: &CompileError{
				Phase:   "parser",
				Message: "expected expression, found '}'",
				Line:    12,
				Column:  25,
			},
			contains: []string{"parser error", "line 12", "column 25", "found '}'"},
		},
		{
			name: "error with context",
			err: &CompileError{
				Phase:   "parser",
				Message: "unexpected token",
				Line:    3,
				Column:  5,
				Context: "> 3 | let x = ;\n      ^",
			},
			contains: []string{"parser error", "line 3", "column 5", "unexpected token", "> 3 |"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errStr, substr) {
					t.Errorf("Error() = %q, want to contain %q", errStr, substr)
				}
			}
		})
	}
}

// TestGenerateErrorContext tests the GenerateErrorContext function.
func TestGenerateErrorContext(t *testing.T) {
	source := `let a = 1;
let b = 2;
let c = 3;
let d = ;
let e = 5;
let f = 6;
let g = 7;`

	tests := []struct {
		name        string
		source      string
		line        int
		column      int
		contains    []string
		notContains []string
	}{
		{
			name:   "error in middle of file",
			source: source,
			line:   4,
			column: 9,
			contains: []string{
				"2 |", "let b = 2;",
				"3 |", "let c = 3;",
				"> 4 |", "let d = ;",
				"^",
				"5 |", "let e = 5;",
				"6 |", "let f = 6;",
			},
			notContains: []string{"1 |", "7 |"},
		},
		{
			name:        "error at beginning of file",
			source:      source,
			line:        1,
			column:      5,
			contains:    []string{"> 1 |", "let a = 1;", "^", "2 |", "3 |"},
			notContains: []string{"4 |"},
		},
		{
			name:        "error at end of file",
			source:      source,
			line:        7,
			column:      5,
			contains:    []string{"5 |", "6 |", "> 7 |", "let g = 7;", "^"},
			notContains: []string{"4 |"},
		},
		{
			name:   "empty source",
			source: "",
			line:   1,
			column: 1,
		},
		{
			name:   "invalid line number",
			source: source,
			line:   0,
			column: 1,
		},
		{
			name:   "line number exceeds source",
			source: source,
			line:   100,
			column: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			context := GenerateErrorContext(tt.source, tt.line, tt.column)

			if len(tt.contains) == 0 && context != "" {
				t.Errorf("GenerateErrorContext() = %q, want empty", context)
			}
			for _, substr := range tt.contains {
				if !strings.Contains(context, substr) {
					t.Errorf("GenerateErrorContext() = %q, want to contain %q", context, substr)
				}
			}
			for _, substr := range tt.notContains {
				if strings.Contains(context, substr) {
					t.Errorf("GenerateErrorContext() = %q, should not contain %q", context, substr)
				}
			}
		})
	}
}

// TestNewLexerErrorWithContext tests the NewLexerErrorWithContext helper function.
func TestNewLexerErrorWithContext(t *testing.T) {
	source := "let x = 1;\nlet y = @;\nlet z = 3;"
	err := NewLexerErrorWithContext("unexpected character '@'", 2, 9, source)

	if err.Phase != "lexer" {
		t.Errorf("Phase = %q, want %q", err.Phase, "lexer")
	}
	if err.Line != 2 || err.Column != 9 {
		t.Errorf("position = %d:%d, want 2:9", err.Line, err.Column)
	}
	if !strings.Contains(err.Context, "> 2 | let y = @;") {
		t.Errorf("Context = %q, want the error line marked", err.Context)
	}
}

// TestNewParserErrorWithContext tests the NewParserErrorWithContext helper function.
func TestNewParserErrorWithContext(t *testing.T) {
	source := "let x = ;"
	err := NewParserErrorWithContext("expected expression, found ';'", 1, 9, source)

	if err.Phase != "parser" {
		t.Errorf("Phase = %q, want %q", err.Phase, "parser")
	}
	if err.Message != "expected expression, found ';'" {
		t.Errorf("Message = %q", err.Message)
	}
	if !strings.Contains(err.Context, "let x = ;") {
		t.Errorf("Context = %q, want the source line", err.Context)
	}
}

// TestGenerateErrorContext_PointerPosition tests that the pointer is correctly positioned.
func TestGenerateErrorContext_PointerPosition(t *testing.T) {
	source := "let x = 5;"

	for _, column := range []int{1, 5, 10} {
		context := GenerateErrorContext(source, 1, column)
		lines := strings.Split(context, "\n")
		if len(lines) < 2 {
			t.Fatalf("column %d: unexpected context %q", column, context)
		}

		sourceLine, pointerLine := lines[0], lines[1]
		prefix := strings.Index(sourceLine, "| ") + 2
		if got := strings.Index(pointerLine, "^"); got != prefix+column-1 {
			t.Errorf("column %d: pointer at %d, want %d\n%s", column, got, prefix+column-1, context)
		}
	}
}
