// Package tree holds the in-memory model of a translation catalog.
//
// A Tree maps string keys to nodes and remembers insertion order, so a
// catalog read from disk is written back with its keys where they were.
package tree

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Tree is an insertion-ordered mapping from key to Node.
// The zero value is an empty tree ready to use.
type Tree struct {
	// Tag is a custom collection tag, empty for plain mappings.
	Tag string

	pairs *orderedmap.OrderedMap[string, Node]
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{pairs: orderedmap.New[string, Node]()}
}

// Set binds key to n. An existing key keeps its position.
// It reports whether the key was already present.
func (t *Tree) Set(key string, n Node) bool {
	if t.pairs == nil {
		t.pairs = orderedmap.New[string, Node]()
	}
	_, present := t.pairs.Set(key, n)

	return present
}

// Get returns the node bound to key.
func (t *Tree) Get(key string) (Node, bool) {
	if t == nil || t.pairs == nil {
		return nil, false
	}

	return t.pairs.Get(key)
}

// Has reports whether key is bound.
func (t *Tree) Has(key string) bool {
	_, ok := t.Get(key)

	return ok
}

// Delete removes key and reports whether it was present.
func (t *Tree) Delete(key string) bool {
	if t == nil || t.pairs == nil {
		return false
	}
	_, present := t.pairs.Delete(key)

	return present
}

// Len returns the number of keys at this level.
func (t *Tree) Len() int {
	if t == nil || t.pairs == nil {
		return 0
	}

	return t.pairs.Len()
}

// Keys returns the keys in insertion order.
func (t *Tree) Keys() []string {
	keys := make([]string, 0, t.Len())
	t.Each(func(key string, _ Node) bool {
		keys = append(keys, key)
		return true
	})

	return keys
}

// Each calls fn for every pair in insertion order until fn returns false.
func (t *Tree) Each(fn func(key string, n Node) bool) {
	if t == nil || t.pairs == nil {
		return
	}
	for pair := t.pairs.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Dig walks nested trees along keys and returns the node at the end of the path.
func (t *Tree) Dig(keys ...string) (Node, bool) {
	var cur Node = t
	for _, key := range keys {
		sub, ok := cur.(*Tree)
		if !ok {
			return nil, false
		}
		if cur, ok = sub.Get(key); !ok {
			return nil, false
		}
	}

	return cur, true
}

// DigString returns the text of the string scalar at the end of the path.
func (t *Tree) DigString(keys ...string) (string, bool) {
	n, ok := t.Dig(keys...)
	if !ok {
		return "", false
	}
	s, ok := n.(Scalar)
	if !ok {
		return "", false
	}
	str, ok := s.Value.(string)

	return str, ok
}
