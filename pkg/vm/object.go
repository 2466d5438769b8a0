package vm

import (
	"sync"
)

// Object maps string keys to values. Keys keep insertion order for display.
// Built-in module objects are frozen and reject assignment.
type Object struct {
	mu     sync.RWMutex
	keys   []string
	fields map[string]Value
	frozen bool
	isErr  bool
}

func (*Object) Kind() Kind { return KindObject }

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Get returns the field stored under key.
func (o *Object) Get(key string) (Value, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.fields[key]
	return v, ok
}

// Set stores a field. It reports false when the object is frozen.
func (o *Object) Set(key string, v Value) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.frozen {
		return false
	}
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
	return true
}

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]string(nil), o.keys...)
}

// Len returns the number of fields.
func (o *Object) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.keys)
}

// Freeze makes the object read-only.
func (o *Object) Freeze() *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.frozen = true
	return o
}

// Frozen reports whether the object is read-only.
func (o *Object) Frozen() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.frozen
}

// errorParts returns name and message for objects created from runtime errors.
func (o *Object) errorParts() (name, message string, ok bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if !o.isErr {
		return "", "", false
	}
	n, _ := o.fields["name"].(String)
	m, _ := o.fields["message"].(String)
	return string(n), string(m), true
}
