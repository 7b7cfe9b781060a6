// Package parser turns YAML text into a translation tree without
// instantiating anything the allow list does not permit.
//
// The document is first decoded into a yaml.v3 node graph, which carries the
// resolved tag of every node but no native values. The graph is then walked
// and each node's tag is checked before the node is materialized, so a
// rejected tag aborts the parse before any value of that tag exists.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/lingokit/catalogyaml/allowlist"
	"github.com/lingokit/catalogyaml/tree"
)

const (
	// Alias expansion is rejected once it produces more than aliasBudget nodes
	// and more than aliasRatio times the nodes written out in the document.
	aliasBudget = 10000
	aliasRatio  = 10
)

// Parse decodes a single YAML document into a tree.
//
// An empty document yields an empty tree. Errors are *SyntaxError or *TagError.
func Parse(src []byte, list *allowlist.List) (*tree.Tree, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return tree.New(), nil
		}
		return nil, syntaxError(err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return nil, syntaxError(err)
	default:
		return nil, &SyntaxError{Line: extra.Line, Message: "expected a single document in the stream"}
	}

	w := &walker{list: list, expanding: make(map[*yaml.Node]bool)}

	return w.document(&doc)
}

type walker struct {
	list *allowlist.List

	expanding  map[*yaml.Node]bool
	aliasDepth int
	plainNodes int
	aliasNodes int
}

func (w *walker) document(doc *yaml.Node) (*tree.Tree, error) {
	if len(doc.Content) == 0 {
		return tree.New(), nil
	}

	root := doc.Content[0]
	entry, err := w.permit(root)
	if err != nil {
		return nil, err
	}
	if root.Kind == yaml.ScalarNode && entry.Kind == allowlist.KindNull {
		return tree.New(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &SyntaxError{Line: root.Line, Message: "document root must be a mapping, found " + shapeName(root)}
	}

	n, err := w.node(root)
	if err != nil {
		return nil, err
	}

	return n.(*tree.Tree), nil
}

func (w *walker) node(n *yaml.Node) (tree.Node, error) {
	if err := w.count(n); err != nil {
		return nil, err
	}
	if n.Kind == yaml.AliasNode {
		return w.alias(n)
	}

	entry, err := w.permit(n)
	if err != nil {
		return nil, err
	}

	kind := entry.Kind
	if kind == allowlist.KindAuto {
		kind = shapeKind(n)
	}
	tag := customTag(entry.Tag)

	switch n.Kind {
	case yaml.ScalarNode:
		return w.scalar(n, kind, tag)

	case yaml.SequenceNode:
		if kind != allowlist.KindSequence {
			return nil, mismatch(n, entry)
		}
		return w.sequence(n, tag)

	case yaml.MappingNode:
		if kind != allowlist.KindMapping {
			return nil, mismatch(n, entry)
		}
		return w.mapping(n, tag)
	}

	return nil, &SyntaxError{Line: n.Line, Message: "unexpected " + shapeName(n)}
}

// permit returns the allow list entry for the node's resolved tag.
func (w *walker) permit(n *yaml.Node) (allowlist.Entry, error) {
	tag := allowlist.CanonicalTag(n.ShortTag())

	entry, ok := w.list.Lookup(tag)
	if !ok {
		return allowlist.Entry{}, &TagError{Tag: tag, Line: n.Line}
	}

	return entry, nil
}

func (w *walker) count(n *yaml.Node) error {
	if w.aliasDepth == 0 {
		w.plainNodes++
		return nil
	}

	w.aliasNodes++
	if w.aliasNodes > aliasBudget && w.aliasNodes > aliasRatio*w.plainNodes {
		return &SyntaxError{Line: n.Line, Message: "document contains excessive aliasing"}
	}

	return nil
}

func (w *walker) alias(n *yaml.Node) (tree.Node, error) {
	target := n.Alias
	if target == nil {
		return nil, &SyntaxError{Line: n.Line, Message: fmt.Sprintf("unknown anchor '%s' referenced", n.Value)}
	}
	if w.expanding[target] {
		return nil, &SyntaxError{Line: n.Line, Message: fmt.Sprintf("anchor '%s' value contains itself", n.Value)}
	}

	w.expanding[target] = true
	w.aliasDepth++
	defer func() {
		delete(w.expanding, target)
		w.aliasDepth--
	}()

	return w.node(target)
}

func (w *walker) sequence(n *yaml.Node, tag string) (tree.Node, error) {
	seq := tree.Sequence{Tag: tag, Items: make([]tree.Node, 0, len(n.Content))}
	for _, item := range n.Content {
		v, err := w.node(item)
		if err != nil {
			return nil, err
		}
		seq.Items = append(seq.Items, v)
	}

	return seq, nil
}

type pair struct {
	key   string
	value *yaml.Node
	merge bool
}

func (w *walker) mapping(n *yaml.Node, tag string) (tree.Node, error) {
	pairs := make([]pair, 0, len(n.Content)/2)
	explicit := make(map[string]int, len(n.Content)/2)

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if isMergeKey(k) {
			if _, err := w.permit(k); err != nil {
				return nil, err
			}
			pairs = append(pairs, pair{value: v, merge: true})
			continue
		}

		key, err := w.key(k)
		if err != nil {
			return nil, err
		}
		if line, dup := explicit[key]; dup {
			return nil, &SyntaxError{Line: k.Line, Message: fmt.Sprintf("mapping key %q already defined at line %d", key, line)}
		}
		explicit[key] = k.Line
		pairs = append(pairs, pair{key: key, value: v})
	}

	t := tree.New()
	t.Tag = tag
	for _, p := range pairs {
		if p.merge {
			if err := w.merge(t, p.value, explicit); err != nil {
				return nil, err
			}
			continue
		}

		v, err := w.node(p.value)
		if err != nil {
			return nil, err
		}
		t.Set(p.key, v)
	}

	return t, nil
}

func (w *walker) key(k *yaml.Node) (string, error) {
	if k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind != yaml.ScalarNode {
		return "", &SyntaxError{Line: k.Line, Message: "mapping keys must be scalars, found " + shapeName(k)}
	}
	if err := w.count(k); err != nil {
		return "", err
	}

	entry, err := w.permit(k)
	if err != nil {
		return "", err
	}

	kind := entry.Kind
	if kind == allowlist.KindAuto {
		kind = allowlist.KindString
	}
	if _, err := w.scalar(k, kind, ""); err != nil {
		return "", err
	}

	return k.Value, nil
}

// merge copies the pairs of the merged mapping(s) into t. Keys defined
// explicitly in the mapping win, and earlier sources win over later ones.
func (w *walker) merge(t *tree.Tree, v *yaml.Node, explicit map[string]int) error {
	sources := []*yaml.Node{v}

	target := v
	if target.Kind == yaml.AliasNode && target.Alias != nil {
		target = target.Alias
	}
	if target.Kind == yaml.SequenceNode {
		if _, err := w.permit(target); err != nil {
			return err
		}
		sources = target.Content
	}

	for _, src := range sources {
		n, err := w.node(src)
		if err != nil {
			return err
		}
		merged, ok := n.(*tree.Tree)
		if !ok {
			return &SyntaxError{Line: src.Line, Message: "map merge requires map or sequence of maps as the value"}
		}
		merged.Each(func(key string, value tree.Node) bool {
			if _, ok := explicit[key]; !ok && !t.Has(key) {
				t.Set(key, value)
			}
			return true
		})
	}

	return nil
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.Value == "<<" && k.ShortTag() == "!!merge"
}

// customTag returns the tag to keep on a materialized node. Schema tags are
// implied by the value and are not kept.
func customTag(tag string) string {
	if allowlist.IsStandard(tag) {
		return ""
	}

	return tag
}

func shapeKind(n *yaml.Node) allowlist.Kind {
	switch n.Kind {
	case yaml.SequenceNode:
		return allowlist.KindSequence
	case yaml.MappingNode:
		return allowlist.KindMapping
	}

	return allowlist.KindString
}

func shapeName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	}

	return "node"
}

func mismatch(n *yaml.Node, entry allowlist.Entry) error {
	return &SyntaxError{
		Line:    n.Line,
		Message: fmt.Sprintf("tag %s is permitted as %s and cannot be applied to a %s", entry.Tag, entry.Kind, shapeName(n)),
	}
}
