package tree

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// InvalidError reports a tree that cannot be represented as YAML.
type InvalidError struct {
	Path   string
	Reason string
}

func (e *InvalidError) Error() string {
	if e.Path == "" {
		return "invalid tree: " + e.Reason
	}

	return fmt.Sprintf("invalid tree at %s: %s", e.Path, e.Reason)
}

// JoinPath appends key to a dotted path.
func JoinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

// IndexPath appends a sequence index to path.
func IndexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// FromMap converts generic decoded data into a Tree. Go maps carry no order,
// so keys are sorted.
func FromMap(m map[string]any) (*Tree, error) {
	n, err := FromValue(m)
	if err != nil {
		return nil, err
	}

	return n.(*Tree), nil
}

// FromValue converts a generic value into a Node.
// Mappings must have string keys; anything else is an *InvalidError.
func FromValue(v any) (Node, error) {
	return fromValue("", v)
}

func fromValue(path string, v any) (Node, error) {
	switch x := v.(type) {
	case Node:
		if t, ok := x.(*Tree); ok && t == nil {
			return nil, &InvalidError{Path: path, Reason: "nil tree"}
		}
		return x, nil
	case nil:
		return Null(), nil
	case string:
		return String(x), nil
	case Symbol:
		return Scalar{Value: x}, nil
	case bool:
		return Bool(x), nil
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		i, err := cast.ToInt64E(x)
		if err != nil {
			return nil, &InvalidError{Path: path, Reason: err.Error()}
		}
		return Int(i), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case time.Time:
		return Time(x), nil
	case []byte:
		return Binary(x), nil
	case []string:
		seq := Sequence{Items: make([]Node, 0, len(x))}
		for _, s := range x {
			seq.Items = append(seq.Items, String(s))
		}
		return seq, nil
	case []any:
		seq := Sequence{Items: make([]Node, 0, len(x))}
		for i, item := range x {
			n, err := fromValue(IndexPath(path, i), item)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, n)
		}
		return seq, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		t := New()
		for _, k := range keys {
			n, err := fromValue(JoinPath(path, k), x[k])
			if err != nil {
				return nil, err
			}
			t.Set(k, n)
		}
		return t, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, item := range x {
			key, ok := k.(string)
			if !ok {
				return nil, &InvalidError{Path: path, Reason: fmt.Sprintf("non-string key %v (%T)", k, k)}
			}
			m[key] = item
		}
		return fromValue(path, m)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() != reflect.String {
		return nil, &InvalidError{Path: path, Reason: fmt.Sprintf("non-string keys (%s)", rv.Type())}
	}

	return nil, &InvalidError{Path: path, Reason: fmt.Sprintf("unsupported value of type %T", v)}
}

func fromUint(u uint64) Scalar {
	if u <= 1<<63-1 {
		return Int(int64(u))
	}

	return Scalar{Value: u}
}

// ToMap converts the tree into generic data. Tags and key order are dropped.
func (t *Tree) ToMap() map[string]any {
	m := make(map[string]any, t.Len())
	t.Each(func(key string, n Node) bool {
		m[key] = toValue(n)
		return true
	})

	return m
}

func toValue(n Node) any {
	switch x := n.(type) {
	case Scalar:
		return x.Value
	case Sequence:
		items := make([]any, 0, len(x.Items))
		for _, item := range x.Items {
			items = append(items, toValue(item))
		}
		return items
	case *Tree:
		return x.ToMap()
	}

	return nil
}
