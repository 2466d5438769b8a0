package lexer

import (
	"errors"
	"testing"

	"github.com/zurustar/brew/pkg/compiler/token"
)

func TestNextToken(t *testing.T) {
	input := `
	let counter = 0;
	fn inc(step) { counter = counter + step; return counter; }
	if counter >= 10 && !done || x != null { obj o = {a: [1, 2.5]}; }
	while i <= 3 { i = i % 2 - 1 * 4 / 5; }
	console.log("hi");
	`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.LET, "let"},
		{token.IDENT, "counter"},
		{token.ASSIGN, "="},
		{token.NUMBER, "0"},
		{token.SEMICOLON, ";"},

		{token.FN, "fn"},
		{token.IDENT, "inc"},
		{token.LPAREN, "("},
		{token.IDENT, "step"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.IDENT, "counter"},
		{token.ASSIGN, "="},
		{token.IDENT, "counter"},
		{token.PLUS, "+"},
		{token.IDENT, "step"},
		{token.SEMICOLON, ";"},
		{token.RETURN, "return"},
		{token.IDENT, "counter"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},

		{token.IF, "if"},
		{token.IDENT, "counter"},
		{token.GTE, ">="},
		{token.NUMBER, "10"},
		{token.AND, "&&"},
		{token.BANG, "!"},
		{token.IDENT, "done"},
		{token.OR, "||"},
		{token.IDENT, "x"},
		{token.NOT_EQ, "!="},
		{token.NULL, "null"},
		{token.LBRACE, "{"},
		{token.OBJ, "obj"},
		{token.IDENT, "o"},
		{token.ASSIGN, "="},
		{token.LBRACE, "{"},
		{token.IDENT, "a"},
		{token.COLON, ":"},
		{token.LBRACKET, "["},
		{token.NUMBER, "1"},
		{token.COMMA, ","},
		{token.NUMBER, "2.5"},
		{token.RBRACKET, "]"},
		{token.RBRACE, "}"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},

		{token.WHILE, "while"},
		{token.IDENT, "i"},
		{token.LTE, "<="},
		{token.NUMBER, "3"},
		{token.LBRACE, "{"},
		{token.IDENT, "i"},
		{token.ASSIGN, "="},
		{token.IDENT, "i"},
		{token.PERCENT, "%"},
		{token.NUMBER, "2"},
		{token.MINUS, "-"},
		{token.NUMBER, "1"},
		{token.ASTERISK, "*"},
		{token.NUMBER, "4"},
		{token.SLASH, "/"},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},

		{token.IDENT, "console"},
		{token.DOT, "."},
		{token.IDENT, "log"},
		{token.LPAREN, "("},
		{token.STRING, "hi"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},

		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	keywords := []token.TokenType{
		token.LET, token.OBJ, token.FUNCTION, token.FN, token.IF, token.ELSE,
		token.WHILE, token.FOR, token.RETURN, token.BREAK, token.CONTINUE,
		token.TRY, token.CATCH, token.FINALLY, token.THROW,
		token.TRUE, token.FALSE, token.NULL,
	}

	for _, kw := range keywords {
		tokens, err := Tokenize(string(kw))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", kw, err)
		}
		if tokens[0].Type != kw {
			t.Errorf("%s: expected keyword token, got %q", kw, tokens[0].Type)
		}
	}

	// Keywords are case sensitive; identifiers may contain digits and underscores.
	for _, ident := range []string{"Let", "iff", "_tmp", "x1", "名前"} {
		tokens, err := Tokenize(ident)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", ident, err)
		}
		if tokens[0].Type != token.IDENT || tokens[0].Literal != ident {
			t.Errorf("%s: expected identifier, got %q %q", ident, tokens[0].Type, tokens[0].Literal)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"42", []string{"42"}},
		{"3.14", []string{"3.14"}},
		{"0.5", []string{"0.5"}},
		// A dot not followed by a digit is member access.
		{"1.foo", []string{"1", ".", "foo"}},
		{"1.", []string{"1", "."}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tokens = tokens[:len(tokens)-1] // drop EOF
			if len(tokens) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}
			for i, want := range tt.expected {
				if tokens[i].Literal != want {
					t.Errorf("token %d: expected %q, got %q", i, want, tokens[i].Literal)
				}
			}
		})
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"plain"`, "plain"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"cr\r"`, "cr\r"},
		{`"say \"hi\""`, `say "hi"`},
		{`"back\\slash"`, `back\slash`},
		{`"unknown \q escape"`, "unknown q escape"},
		{`"日本語"`, "日本語"},
		{`""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tokens[0].Type != token.STRING {
				t.Fatalf("expected STRING, got %q", tokens[0].Type)
			}
			if tokens[0].Literal != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tokens[0].Literal)
			}
		})
	}
}

func TestComments(t *testing.T) {
	input := `// leading comment
let a = 1; // trailing
/* block
   comment */ let b = 2;
a /* inline */ + b`

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var literals []string
	for _, tok := range tokens[:len(tokens)-1] {
		literals = append(literals, tok.Literal)
	}
	expected := []string{"let", "a", "=", "1", ";", "let", "b", "=", "2", ";", "a", "+", "b"}
	if len(literals) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, literals)
	}
	for i := range expected {
		if literals[i] != expected[i] {
			t.Errorf("token %d: expected %q, got %q", i, expected[i], literals[i])
		}
	}

	// "/" alone is still division.
	tokens, err = Tokenize("a / b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[1].Type != token.SLASH {
		t.Errorf("expected SLASH, got %q", tokens[1].Type)
	}
}

func TestSpans(t *testing.T) {
	input := "let x = 10;\n  \"ab\" >= y"

	tests := []struct {
		literal string
		span    token.Span
	}{
		{"let", token.Span{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 3}},
		{"x", token.Span{StartLine: 1, StartColumn: 5, EndLine: 1, EndColumn: 5}},
		{"=", token.Span{StartLine: 1, StartColumn: 7, EndLine: 1, EndColumn: 7}},
		{"10", token.Span{StartLine: 1, StartColumn: 9, EndLine: 1, EndColumn: 10}},
		{";", token.Span{StartLine: 1, StartColumn: 11, EndLine: 1, EndColumn: 11}},
		{"ab", token.Span{StartLine: 2, StartColumn: 3, EndLine: 2, EndColumn: 6}},
		{">=", token.Span{StartLine: 2, StartColumn: 8, EndLine: 2, EndColumn: 9}},
		{"y", token.Span{StartLine: 2, StartColumn: 11, EndLine: 2, EndColumn: 11}},
	}

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
		if tok.Span != tt.span {
			t.Errorf("tests[%d] %q - span wrong. expected=%s, got=%s (%+v)", i, tt.literal, tt.span, tok.Span, tok.Span)
		}
	}

	if eof := tokens[len(tokens)-1]; eof.Type != token.EOF || eof.Span.StartLine != 2 {
		t.Errorf("expected EOF on line 2, got %+v", eof)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		line    int
		column  int
	}{
		{"unterminated string", `let s = "abc`, "unterminated string literal", 1, 9},
		{"unterminated string across lines", "x;\n\"one\ntwo", "unterminated string literal", 2, 1},
		{"unterminated block comment", "a; /* never closed", "unterminated block comment", 1, 4},
		{"unexpected character", "let a = 1 @ 2;", "unexpected character '@'", 1, 11},
		{"single ampersand", "a & b", "unexpected character '&'", 1, 3},
		{"single pipe", "a | b", "unexpected character '|'", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *LexError, got %T", err)
			}
			if lexErr.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, lexErr.Message)
			}
			if lexErr.Span.StartLine != tt.line || lexErr.Span.StartColumn != tt.column {
				t.Errorf("expected position %d:%d, got %d:%d",
					tt.line, tt.column, lexErr.Span.StartLine, lexErr.Span.StartColumn)
			}
		})
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// only a comment"} {
		tokens, err := Tokenize(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if len(tokens) != 1 || tokens[0].Type != token.EOF {
			t.Errorf("%q: expected a single EOF token, got %v", input, tokens)
		}
	}
}
