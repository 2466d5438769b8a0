package vm

import (
	"sync"
)

// Array is an ordered, shared-by-reference sequence of values. Every
// operation holds the array's lock, so scripts running on different threads
// may mutate the same array.
type Array struct {
	elements []Value
	mu       sync.RWMutex

	bindOnce sync.Once
	methods  map[string]*NativeFunction
}

func (*Array) Kind() Kind { return KindArray }

// NewArray creates an Array that takes ownership of elements.
func NewArray(elements []Value) *Array {
	if elements == nil {
		elements = []Value{}
	}
	return &Array{elements: elements}
}

// Get retrieves the element at the specified index.
func (a *Array) Get(index int) (Value, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if index < 0 || index >= len(a.elements) {
		return NullValue, false
	}
	return a.elements[index], true
}

// Set replaces the element at index. It reports false when index is out of
// range; arrays grow only through Push.
func (a *Array) Set(index int, value Value) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.elements) {
		return false
	}
	a.elements[index] = value
	return true
}

// Len returns the current length of the array.
func (a *Array) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.elements)
}

// ToSlice returns a copy of the underlying slice.
func (a *Array) ToSlice() []Value {
	a.mu.RLock()
	defer a.mu.RUnlock()
	result := make([]Value, len(a.elements))
	copy(result, a.elements)
	return result
}

// Push appends values and returns the new length.
func (a *Array) Push(values ...Value) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.elements = append(a.elements, values...)
	return len(a.elements)
}

// Pop removes and returns the last element.
func (a *Array) Pop() (Value, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.elements) == 0 {
		return NullValue, false
	}
	last := a.elements[len(a.elements)-1]
	a.elements[len(a.elements)-1] = nil
	a.elements = a.elements[:len(a.elements)-1]
	return last, true
}

// Shift removes and returns the first element.
func (a *Array) Shift() (Value, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.elements) == 0 {
		return NullValue, false
	}
	first := a.elements[0]
	a.elements[0] = nil
	a.elements = a.elements[1:]
	return first, true
}

// IndexOf returns the position of the first element equal to v, or -1.
func (a *Array) IndexOf(v Value) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i, e := range a.elements {
		if Equal(e, v) {
			return i
		}
	}
	return -1
}

// Contains reports whether an element equal to v is present.
func (a *Array) Contains(v Value) bool {
	return a.IndexOf(v) >= 0
}

// Method returns the bound push or pop member. The same function is
// returned on every access, so a.push == a.push.
func (a *Array) Method(name string) (*NativeFunction, bool) {
	a.bindOnce.Do(func() {
		a.methods = map[string]*NativeFunction{
			"push": NewNative("array.push", 1, -1, func(_ *Thread, args []Value) (Value, error) {
				return Number(a.Push(args...)), nil
			}),
			"pop": NewNative("array.pop", 0, 0, func(_ *Thread, _ []Value) (Value, error) {
				v, _ := a.Pop()
				return v, nil
			}),
		}
	})
	fn, ok := a.methods[name]
	return fn, ok
}
