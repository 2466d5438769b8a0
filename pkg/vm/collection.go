package vm

import (
	"sync"
)

// CollectionKind distinguishes the native data structures of the data module.
type CollectionKind string

const (
	CollectionQueue CollectionKind = "queue"
	CollectionStack CollectionKind = "stack"
	CollectionSet   CollectionKind = "set"
	CollectionMap   CollectionKind = "map"
)

// Collection is a queue, stack, set or map. Its methods are native functions
// bound to the instance and reached through member access (q.push(1)).
type Collection struct {
	kind CollectionKind
	mu   sync.Mutex

	// queue and stack elements, set members in insertion order, map keys in
	// insertion order
	items   []Value
	members map[Value]Value

	methods map[string]*NativeFunction
}

func (*Collection) Kind() Kind { return KindCollection }

// CollectionKind returns which data structure c is.
func (c *Collection) CollectionKind() CollectionKind {
	return c.kind
}

// Method returns the bound method called name.
func (c *Collection) Method(name string) (*NativeFunction, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// NewQueue creates an empty FIFO queue.
func NewQueue() *Collection {
	c := &Collection{kind: CollectionQueue}
	c.methods = c.bind(map[string]methodSpec{
		"enqueue": {1, 1, c.pushBack},
		"push":    {1, 1, c.pushBack},
		"dequeue": {0, 0, c.popFront},
		"pop":     {0, 0, c.popFront},
		"peek":    {0, 0, c.peekFront},
		"size":    {0, 0, c.size},
		"isEmpty": {0, 0, c.isEmpty},
		"toArray": {0, 0, c.toArray},
	})
	return c
}

// NewStack creates an empty LIFO stack.
func NewStack() *Collection {
	c := &Collection{kind: CollectionStack}
	c.methods = c.bind(map[string]methodSpec{
		"push":    {1, 1, c.pushBack},
		"pop":     {0, 0, c.popBack},
		"peek":    {0, 0, c.peekBack},
		"size":    {0, 0, c.size},
		"isEmpty": {0, 0, c.isEmpty},
		"toArray": {0, 0, c.toArray},
	})
	return c
}

// NewSet creates a set holding the distinct values of initial.
func NewSet(initial ...Value) *Collection {
	c := &Collection{kind: CollectionSet, members: make(map[Value]Value)}
	for _, v := range initial {
		c.add(v)
	}
	c.methods = c.bind(map[string]methodSpec{
		"add":    {1, 1, c.setAdd},
		"has":    {1, 1, c.has},
		"delete": {1, 1, c.setDelete},
		"size":   {0, 0, c.size},
		"values": {0, 0, c.toArray},
	})
	return c
}

// NewMap creates an empty map. Keys are compared like ==: by value for
// primitives, by identity otherwise.
func NewMap() *Collection {
	c := &Collection{kind: CollectionMap, members: make(map[Value]Value)}
	c.methods = c.bind(map[string]methodSpec{
		"set":    {2, 2, c.mapSet},
		"get":    {1, 1, c.mapGet},
		"has":    {1, 1, c.has},
		"delete": {1, 1, c.mapDelete},
		"keys":   {0, 0, c.toArray},
		"values": {0, 0, c.mapValues},
		"size":   {0, 0, c.size},
	})
	return c
}

type methodSpec struct {
	min, max int
	fn       func(args []Value) Value
}

func (c *Collection) bind(specs map[string]methodSpec) map[string]*NativeFunction {
	methods := make(map[string]*NativeFunction, len(specs))
	for name, spec := range specs {
		fn := spec.fn
		methods[name] = NewNative(string(c.kind)+"."+name, spec.min, spec.max,
			func(_ *Thread, args []Value) (Value, error) {
				c.mu.Lock()
				defer c.mu.Unlock()
				return fn(args), nil
			})
	}
	return methods
}

// The methods below run with c.mu held.

func (c *Collection) pushBack(args []Value) Value {
	c.items = append(c.items, args[0])
	return NullValue
}

func (c *Collection) popFront(_ []Value) Value {
	if len(c.items) == 0 {
		return NullValue
	}
	v := c.items[0]
	c.items[0] = nil
	c.items = c.items[1:]
	return v
}

func (c *Collection) popBack(_ []Value) Value {
	if len(c.items) == 0 {
		return NullValue
	}
	v := c.items[len(c.items)-1]
	c.items[len(c.items)-1] = nil
	c.items = c.items[:len(c.items)-1]
	return v
}

func (c *Collection) peekFront(_ []Value) Value {
	if len(c.items) == 0 {
		return NullValue
	}
	return c.items[0]
}

func (c *Collection) peekBack(_ []Value) Value {
	if len(c.items) == 0 {
		return NullValue
	}
	return c.items[len(c.items)-1]
}

func (c *Collection) size(_ []Value) Value {
	return Number(len(c.items))
}

func (c *Collection) isEmpty(_ []Value) Value {
	return Bool(len(c.items) == 0)
}

func (c *Collection) toArray(_ []Value) Value {
	return NewArray(append([]Value(nil), c.items...))
}

func (c *Collection) has(args []Value) Value {
	_, ok := c.members[args[0]]
	return Bool(ok)
}

func (c *Collection) add(v Value) bool {
	if _, ok := c.members[v]; ok {
		return false
	}
	c.members[v] = NullValue
	c.items = append(c.items, v)
	return true
}

func (c *Collection) remove(v Value) (Value, bool) {
	old, ok := c.members[v]
	if !ok {
		return NullValue, false
	}
	delete(c.members, v)
	for i, item := range c.items {
		if item == v {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	return old, true
}

func (c *Collection) setAdd(args []Value) Value {
	c.add(args[0])
	return NullValue
}

func (c *Collection) setDelete(args []Value) Value {
	_, ok := c.remove(args[0])
	return Bool(ok)
}

func (c *Collection) mapSet(args []Value) Value {
	if _, ok := c.members[args[0]]; !ok {
		c.items = append(c.items, args[0])
	}
	c.members[args[0]] = args[1]
	return NullValue
}

func (c *Collection) mapGet(args []Value) Value {
	if v, ok := c.members[args[0]]; ok {
		return v
	}
	return NullValue
}

func (c *Collection) mapDelete(args []Value) Value {
	old, _ := c.remove(args[0])
	return old
}

func (c *Collection) mapValues(_ []Value) Value {
	values := make([]Value, len(c.items))
	for i, k := range c.items {
		values[i] = c.members[k]
	}
	return NewArray(values)
}

// values returns the elements, members or keys in order.
func (c *Collection) values() []Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Value(nil), c.items...)
}

// entries returns a map's keys and values in insertion order.
func (c *Collection) entries() ([]Value, []Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := append([]Value(nil), c.items...)
	values := make([]Value, len(keys))
	for i, k := range keys {
		values[i] = c.members[k]
	}
	return keys, values
}
