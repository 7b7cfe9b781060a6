package tree

import (
	"encoding/base64"
	"strconv"
	"time"
)

// Node is a value held by a Tree: a Scalar, a Sequence or a nested *Tree.
type Node interface {
	node()
}

// Symbol is a symbol-like atom materialized from a tag permitted with the symbol kind.
type Symbol string

// Scalar is a leaf value.
//
// Value is one of string, int64, uint64, float64, bool, nil, time.Time, []byte or Symbol.
// Tag is only set for tags outside the standard YAML schema, for example "!money".
type Scalar struct {
	Tag   string
	Value any
}

// Sequence is an ordered list of nodes.
type Sequence struct {
	Tag   string
	Items []Node
}

func (Scalar) node()   {}
func (Sequence) node() {}
func (*Tree) node()    {}

// String returns a string scalar.
func String(s string) Scalar { return Scalar{Value: s} }

// Int returns an integer scalar.
func Int(i int64) Scalar { return Scalar{Value: i} }

// Float returns a float scalar.
func Float(f float64) Scalar { return Scalar{Value: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{Value: b} }

// Null returns a null scalar.
func Null() Scalar { return Scalar{} }

// Time returns a timestamp scalar.
func Time(t time.Time) Scalar { return Scalar{Value: t} }

// Binary returns a binary scalar.
func Binary(b []byte) Scalar { return Scalar{Value: b} }

// Tagged returns a scalar carrying a custom tag.
func Tagged(tag string, v any) Scalar { return Scalar{Tag: tag, Value: v} }

// Seq returns a sequence of the given nodes.
func Seq(items ...Node) Sequence { return Sequence{Items: items} }

// IsNull reports whether the scalar holds no value.
func (s Scalar) IsNull() bool { return s.Value == nil }

// Text returns the textual form of the scalar value.
// Translation strings come back verbatim.
func (s Scalar) Text() string {
	switch v := s.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case Symbol:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case []byte:
		return base64.StdEncoding.EncodeToString(v)
	}

	return ""
}
