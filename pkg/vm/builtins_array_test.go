package vm

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestArrayBuiltins tests the array module.
func TestArrayBuiltins(t *testing.T) {
	v := newTestVM(io.Discard)

	t.Run("length", func(t *testing.T) {
		got, err := callBuiltin(t, v, "array.length", NewArray([]Value{Number(1), Number(2)}))
		if err != nil || got != Number(2) {
			t.Errorf("expected 2, got %v, %v", got, err)
		}
	})

	t.Run("contains uses equality", func(t *testing.T) {
		inner := NewArray(nil)
		arr := NewArray([]Value{String("a"), inner})
		tests := []struct {
			needle Value
			want   Bool
		}{
			{String("a"), true},
			{String("b"), false},
			{inner, true},
			{NewArray(nil), false},
		}
		for _, tt := range tests {
			got, err := callBuiltin(t, v, "array.contains", arr, tt.needle)
			if err != nil || got != tt.want {
				t.Errorf("contains(%s): expected %v, got %v, %v", Inspect(tt.needle), tt.want, got, err)
			}
		}
	})

	t.Run("shift mutates in place", func(t *testing.T) {
		arr := NewArray([]Value{Number(1), Number(2), Number(3)})
		got, err := callBuiltin(t, v, "array.shift", arr)
		if err != nil || got != Number(1) {
			t.Fatalf("expected 1, got %v, %v", got, err)
		}
		if diff := cmp.Diff([]Value{Number(2), Number(3)}, arr.ToSlice()); diff != "" {
			t.Errorf("remaining elements (-want +got):\n%s", diff)
		}
	})

	t.Run("shift on empty array", func(t *testing.T) {
		_, err := callBuiltin(t, v, "array.shift", NewArray(nil))
		if rerr, ok := err.(*RuntimeError); !ok || rerr.Type != ErrorIndexOutOfRange {
			t.Errorf("expected IndexOutOfRangeError, got %v", err)
		}
	})

	t.Run("push returns new length", func(t *testing.T) {
		arr := NewArray(nil)
		got, err := callBuiltin(t, v, "array.push", arr, Number(1), Number(2))
		if err != nil || got != Number(2) {
			t.Fatalf("expected 2, got %v, %v", got, err)
		}
	})

	t.Run("pop on empty yields null", func(t *testing.T) {
		got, err := callBuiltin(t, v, "array.pop", NewArray(nil))
		if err != nil || got != NullValue {
			t.Errorf("expected null, got %v, %v", got, err)
		}
	})

	t.Run("indexOf", func(t *testing.T) {
		arr := NewArray([]Value{Number(5), Number(6), Number(5)})
		got, err := callBuiltin(t, v, "array.indexOf", arr, Number(5))
		if err != nil || got != Number(0) {
			t.Errorf("expected 0, got %v, %v", got, err)
		}
		got, _ = callBuiltin(t, v, "array.indexOf", arr, Number(9))
		if got != Number(-1) {
			t.Errorf("expected -1, got %v", got)
		}
	})

	t.Run("non-array argument", func(t *testing.T) {
		_, err := callBuiltin(t, v, "array.length", String("abc"))
		if rerr, ok := err.(*RuntimeError); !ok || rerr.Type != ErrorTypeMismatch {
			t.Errorf("expected TypeError, got %v", err)
		}
	})
}

// TestDataBuiltins tests the collection constructors.
func TestDataBuiltins(t *testing.T) {
	v := newTestVM(io.Discard)

	tests := []struct {
		fn   string
		args []Value
		want CollectionKind
	}{
		{"data.queue", nil, CollectionQueue},
		{"data.stack", nil, CollectionStack},
		{"data.set", []Value{Number(1), Number(2)}, CollectionSet},
		{"data.map", nil, CollectionMap},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			got, err := callBuiltin(t, v, tt.fn, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			c, ok := got.(*Collection)
			if !ok {
				t.Fatalf("expected collection, got %s", TypeName(got))
			}
			if c.CollectionKind() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, c.CollectionKind())
			}
		})
	}

	t.Run("instances are independent", func(t *testing.T) {
		a, _ := callBuiltin(t, v, "data.queue")
		b, _ := callBuiltin(t, v, "data.queue")
		call(t, a.(*Collection), "enqueue", Number(1))
		if call(t, b.(*Collection), "size") != Number(0) {
			t.Error("queues share state")
		}
	})
}
