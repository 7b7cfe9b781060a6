package tree

import (
	"bytes"
	"math"
	"time"
)

// Equal reports whether a and b hold the same value.
// Trees compare key order as well as content.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Scalar:
		y, ok := b.(Scalar)
		return ok && x.Tag == y.Tag && scalarEqual(x.Value, y.Value)

	case Sequence:
		y, ok := b.(Sequence)
		if !ok || x.Tag != y.Tag || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true

	case *Tree:
		y, ok := b.(*Tree)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		return x.equal(y)
	}

	return a == nil && b == nil
}

func (t *Tree) equal(o *Tree) bool {
	if t.Tag != o.Tag || t.Len() != o.Len() {
		return false
	}
	if t.Len() == 0 {
		return true
	}

	a, b := t.pairs.Oldest(), o.pairs.Oldest()
	for ; a != nil && b != nil; a, b = a.Next(), b.Next() {
		if a.Key != b.Key || !Equal(a.Value, b.Value) {
			return false
		}
	}

	return a == nil && b == nil
}

func scalarEqual(a, b any) bool {
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && (x == y || (math.IsNaN(x) && math.IsNaN(y)))
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	}

	return a == b
}
