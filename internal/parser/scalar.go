package parser

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lingokit/catalogyaml/allowlist"
	"github.com/lingokit/catalogyaml/tree"
)

// scalar materializes a scalar node according to kind.
func (w *walker) scalar(n *yaml.Node, kind allowlist.Kind, tag string) (tree.Node, error) {
	switch kind {
	case allowlist.KindString, allowlist.KindMerge:
		return tree.Scalar{Tag: tag, Value: n.Value}, nil

	case allowlist.KindSymbol:
		return tree.Scalar{Tag: tag, Value: tree.Symbol(n.Value)}, nil

	case allowlist.KindNull:
		return tree.Scalar{Tag: tag}, nil

	case allowlist.KindInt:
		var i int64
		if err := decodeAs(n, "!!int", &i); err == nil {
			return tree.Scalar{Tag: tag, Value: i}, nil
		}
		var u uint64
		if err := decodeAs(n, "!!int", &u); err != nil {
			return nil, err
		}
		return tree.Scalar{Tag: tag, Value: u}, nil

	case allowlist.KindFloat:
		var f float64
		if err := decodeAs(n, "!!float", &f); err != nil {
			return nil, err
		}
		return tree.Scalar{Tag: tag, Value: f}, nil

	case allowlist.KindBool:
		var b bool
		if err := decodeAs(n, "!!bool", &b); err != nil {
			return nil, err
		}
		return tree.Scalar{Tag: tag, Value: b}, nil

	case allowlist.KindTimestamp:
		var t time.Time
		if err := decodeAs(n, "!!timestamp", &t); err != nil {
			return nil, err
		}
		return tree.Scalar{Tag: tag, Value: t}, nil

	case allowlist.KindBinary:
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return nil, &SyntaxError{Line: n.Line, Message: fmt.Sprintf("cannot decode binary value: %v", err)}
		}
		return tree.Scalar{Tag: tag, Value: b}, nil
	}

	return nil, &SyntaxError{
		Line:    n.Line,
		Message: fmt.Sprintf("tag %s is permitted as %s and cannot be applied to a scalar", allowlist.CanonicalTag(n.ShortTag()), kind),
	}
}

// decodeAs decodes the text of n as if it carried the schema tag std,
// which lets custom tags reuse yaml.v3's resolution rules.
func decodeAs(n *yaml.Node, std string, out any) error {
	shadow := &yaml.Node{
		Kind:   yaml.ScalarNode,
		Tag:    std,
		Value:  n.Value,
		Line:   n.Line,
		Column: n.Column,
	}
	if err := shadow.Decode(out); err != nil {
		return &SyntaxError{Line: n.Line, Message: fmt.Sprintf("cannot decode %q as %s", n.Value, std)}
	}

	return nil
}
