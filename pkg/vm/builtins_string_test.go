package vm

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestStringBuiltins tests the string module through direct native calls.
func TestStringBuiltins(t *testing.T) {
	v := newTestVM(io.Discard)

	tests := []struct {
		name string
		fn   string
		args []Value
		want Value
	}{
		{"length counts characters", "string.length", []Value{String("日本語")}, Number(3)},
		{"length of empty", "string.length", []Value{String("")}, Number(0)},
		{"charAt", "string.charAt", []Value{String("héllo"), Number(1)}, String("é")},
		{"codePointAt", "string.codePointAt", []Value{String("A"), Number(0)}, Number(65)},
		{"upper", "string.upper", []Value{String("abc")}, String("ABC")},
		{"upper special casing", "string.upper", []Value{String("straße")}, String("STRASSE")},
		{"lower", "string.lower", []Value{String("ÀBC")}, String("àbc")},
		{"slice", "string.slice", []Value{String("hello"), Number(1), Number(3)}, String("el")},
		{"slice clamps", "string.slice", []Value{String("hi"), Number(-5), Number(100)}, String("hi")},
		{"slice negative start", "string.slice", []Value{String("hello"), Number(-3)}, String("llo")},
		{"slice reversed bounds", "string.slice", []Value{String("hello"), Number(3), Number(1)}, String("")},
		{"slice without end", "string.slice", []Value{String("hello"), Number(2)}, String("llo")},
		{"indexOf", "string.indexOf", []Value{String("日本語"), String("語")}, Number(2)},
		{"indexOf absent", "string.indexOf", []Value{String("abc"), String("z")}, Number(-1)},
		{"contains", "string.contains", []Value{String("abc"), String("bc")}, Bool(true)},
		{"trim", "string.trim", []Value{String("  x \n")}, String("x")},
		{"replace all", "string.replace", []Value{String("a-b-c"), String("-"), String("+")}, String("a+b+c")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := callBuiltin(t, v, tt.fn, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", Inspect(tt.want), Inspect(got))
			}
		})
	}
}

// TestStringSplitJoin tests split and join, which produce and consume arrays.
func TestStringSplitJoin(t *testing.T) {
	v := newTestVM(io.Discard)

	tests := []struct {
		name string
		s    string
		sep  string
		want []Value
	}{
		{"comma", "a,b,,c", ",", []Value{String("a"), String("b"), String(""), String("c")}},
		{"empty separator splits characters", "日本", "", []Value{String("日"), String("本")}},
		{"separator absent", "abc", ";", []Value{String("abc")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := callBuiltin(t, v, "string.split", String(tt.s), String(tt.sep))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got.(*Array).ToSlice()); diff != "" {
				t.Errorf("split mismatch (-want +got):\n%s", diff)
			}

			joined, err := callBuiltin(t, v, "string.join", got, String(tt.sep))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if joined != String(tt.s) {
				t.Errorf("join did not invert split: got %q", joined)
			}
		})
	}

	t.Run("join stringifies elements", func(t *testing.T) {
		arr := NewArray([]Value{Number(1), Bool(true), NullValue})
		got, err := callBuiltin(t, v, "string.join", arr, String("-"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != String("1-true-null") {
			t.Errorf("expected 1-true-null, got %s", Inspect(got))
		}
	})
}

// TestStringBuiltins_Errors tests argument failures.
func TestStringBuiltins_Errors(t *testing.T) {
	v := newTestVM(io.Discard)

	tests := []struct {
		name     string
		fn       string
		args     []Value
		wantType ErrorType
	}{
		{"charAt past the end", "string.charAt", []Value{String("ab"), Number(2)}, ErrorIndexOutOfRange},
		{"charAt negative", "string.charAt", []Value{String("ab"), Number(-1)}, ErrorIndexOutOfRange},
		{"codePointAt empty", "string.codePointAt", []Value{String(""), Number(0)}, ErrorIndexOutOfRange},
		{"length of number", "string.length", []Value{Number(1)}, ErrorTypeMismatch},
		{"join of non-array", "string.join", []Value{String("a"), String(",")}, ErrorTypeMismatch},
		{"slice with string bound", "string.slice", []Value{String("a"), String("0")}, ErrorTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := callBuiltin(t, v, tt.fn, tt.args...)
			rerr, ok := err.(*RuntimeError)
			if !ok {
				t.Fatalf("expected RuntimeError, got %T: %v", err, err)
			}
			if rerr.Type != tt.wantType {
				t.Errorf("expected %s, got %s", tt.wantType, rerr.Type)
			}
		})
	}
}

// TestClampRange tests slice bound resolution.
func TestClampRange(t *testing.T) {
	tests := []struct {
		start, end, n int
		wantStart     int
		wantEnd       int
	}{
		{1, 3, 5, 1, 3},
		{-5, 100, 2, 0, 2},
		{-2, -1, 5, 3, 4},
		{4, 2, 5, 2, 2},
		{0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		s, e := clampRange(tt.start, tt.end, tt.n)
		if s != tt.wantStart || e != tt.wantEnd {
			t.Errorf("clampRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.start, tt.end, tt.n, s, e, tt.wantStart, tt.wantEnd)
		}
	}
}
