// Package dumper writes translation trees as canonical YAML.
//
// The output is produced by a dedicated emitter rather than yaml.v3's encoder:
// yaml.v3 escapes characters outside the Basic Multilingual Plane, and catalogs
// must keep emoji as literal UTF-8 so that diffs stay readable.
package dumper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lingokit/catalogyaml/tree"
)

const (
	// DefaultIndent is the number of spaces per nesting level.
	DefaultIndent = 2

	// Longer keys cannot be written as implicit keys.
	maxImplicitKey = 1024

	maxDepth = 10000
)

// Config controls the layout of the output.
type Config struct {
	// Indent is the number of spaces per nesting level, 1 to 9.
	// Zero means DefaultIndent.
	Indent int

	// LineWidth folds long plain values at spaces. Zero or less never folds.
	LineWidth int

	// SortKeys writes mapping keys in byte-wise order instead of insertion order.
	SortKeys bool
}

// Dump renders t as a single YAML document.
//
// A tree that cannot be represented is reported as *tree.InvalidError and
// no output is returned.
func Dump(t *tree.Tree, cfg Config) ([]byte, error) {
	if t == nil {
		return nil, &tree.InvalidError{Reason: "nil tree"}
	}
	if cfg.Indent == 0 {
		cfg.Indent = DefaultIndent
	}
	if cfg.Indent < 1 || cfg.Indent > 9 {
		return nil, fmt.Errorf("dumper: indent must be between 1 and 9, got %d", cfg.Indent)
	}

	e := &emitter{cfg: cfg, visiting: make(map[*tree.Tree]bool)}
	if err := e.document(t); err != nil {
		return nil, err
	}

	return []byte(e.sb.String()), nil
}

type emitter struct {
	sb       strings.Builder
	cfg      Config
	visiting map[*tree.Tree]bool
	depth    int
}

func (e *emitter) document(t *tree.Tree) error {
	e.sb.WriteString("---")
	if err := e.writeTag(t.Tag, ""); err != nil {
		return err
	}
	if t.Len() == 0 {
		e.sb.WriteString(" {}\n")
		return nil
	}
	e.sb.WriteByte('\n')

	return e.mapping(t, 0, "", false)
}

// mapping writes the entries of t at column indent. When inline is set the
// first entry continues the current line, as after a sequence dash.
func (e *emitter) mapping(t *tree.Tree, indent int, path string, inline bool) error {
	if err := e.enter(t, path); err != nil {
		return err
	}
	defer e.leave(t)

	keys := t.Keys()
	if e.cfg.SortKeys {
		sort.Strings(keys)
	}

	for i, key := range keys {
		n, _ := t.Get(key)
		p := tree.JoinPath(path, key)

		if i > 0 || !inline {
			e.writeIndent(indent)
		}
		if err := e.key(key, indent, p); err != nil {
			return err
		}
		if err := e.value(n, indent, p); err != nil {
			return err
		}
	}

	return nil
}

func (e *emitter) key(key string, indent int, path string) error {
	text, err := keyText(key, path)
	if err != nil {
		return err
	}

	if len(text) > maxImplicitKey {
		e.sb.WriteString("? ")
		e.sb.WriteString(text)
		e.sb.WriteByte('\n')
		e.writeIndent(indent)
		e.sb.WriteByte(':')
		return nil
	}

	e.sb.WriteString(text)
	e.sb.WriteByte(':')

	return nil
}

// value writes n after "key:" belonging to a mapping at column indent.
func (e *emitter) value(n tree.Node, indent int, path string) error {
	switch v := n.(type) {
	case tree.Scalar:
		e.sb.WriteByte(' ')
		return e.scalar(v, indent, e.column(), path)

	case *tree.Tree:
		if v == nil {
			return &tree.InvalidError{Path: path, Reason: "nil tree"}
		}
		if err := e.writeTag(v.Tag, path); err != nil {
			return err
		}
		if v.Len() == 0 {
			e.sb.WriteString(" {}\n")
			return nil
		}
		e.sb.WriteByte('\n')
		return e.mapping(v, indent+e.cfg.Indent, path, false)

	case tree.Sequence:
		if err := e.writeTag(v.Tag, path); err != nil {
			return err
		}
		if len(v.Items) == 0 {
			e.sb.WriteString(" []\n")
			return nil
		}
		e.sb.WriteByte('\n')
		col := indent
		if v.Tag != "" {
			col += e.cfg.Indent
		}
		return e.sequence(v, col, path, false)

	case nil:
		return &tree.InvalidError{Path: path, Reason: "nil node"}
	}

	return &tree.InvalidError{Path: path, Reason: fmt.Sprintf("unsupported node type %T", n)}
}

// sequence writes the items of s with their dashes at column col.
func (e *emitter) sequence(s tree.Sequence, col int, path string, inline bool) error {
	if err := e.descend(path); err != nil {
		return err
	}
	defer func() { e.depth-- }()

	for i, item := range s.Items {
		p := tree.IndexPath(path, i)

		if i > 0 || !inline {
			e.writeIndent(col)
		}
		e.sb.WriteByte('-')
		if err := e.item(item, col, p); err != nil {
			return err
		}
	}

	return nil
}

// item writes n after the dash of a sequence entry at column col.
func (e *emitter) item(n tree.Node, col int, path string) error {
	switch v := n.(type) {
	case tree.Scalar:
		e.sb.WriteByte(' ')
		return e.scalar(v, col, e.column(), path)

	case *tree.Tree:
		if v == nil {
			return &tree.InvalidError{Path: path, Reason: "nil tree"}
		}
		if err := e.writeTag(v.Tag, path); err != nil {
			return err
		}
		switch {
		case v.Len() == 0:
			e.sb.WriteString(" {}\n")
			return nil
		case v.Tag != "":
			e.sb.WriteByte('\n')
			return e.mapping(v, col+e.cfg.Indent, path, false)
		}
		e.sb.WriteByte(' ')
		return e.mapping(v, col+2, path, true)

	case tree.Sequence:
		if err := e.writeTag(v.Tag, path); err != nil {
			return err
		}
		switch {
		case len(v.Items) == 0:
			e.sb.WriteString(" []\n")
			return nil
		case v.Tag != "":
			e.sb.WriteByte('\n')
			return e.sequence(v, col+2, path, false)
		}
		e.sb.WriteByte(' ')
		return e.sequence(v, col+2, path, true)

	case nil:
		return &tree.InvalidError{Path: path, Reason: "nil node"}
	}

	return &tree.InvalidError{Path: path, Reason: fmt.Sprintf("unsupported node type %T", n)}
}

func (e *emitter) enter(t *tree.Tree, path string) error {
	if e.visiting[t] {
		return &tree.InvalidError{Path: path, Reason: "tree contains itself"}
	}
	if err := e.descend(path); err != nil {
		return err
	}
	e.visiting[t] = true

	return nil
}

func (e *emitter) leave(t *tree.Tree) {
	delete(e.visiting, t)
	e.depth--
}

func (e *emitter) descend(path string) error {
	if e.depth >= maxDepth {
		return &tree.InvalidError{Path: path, Reason: "tree nests too deeply"}
	}
	e.depth++

	return nil
}

// writeTag writes " tag" for a custom tag.
func (e *emitter) writeTag(tag, path string) error {
	if tag == "" {
		return nil
	}
	text, err := tagText(tag)
	if err != nil {
		return &tree.InvalidError{Path: path, Reason: err.Error()}
	}
	e.sb.WriteByte(' ')
	e.sb.WriteString(text)

	return nil
}

func (e *emitter) writeIndent(n int) {
	for i := 0; i < n; i++ {
		e.sb.WriteByte(' ')
	}
}

// column returns the column the next byte is written at.
func (e *emitter) column() int {
	s := e.sb.String()
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}

	return runeCount(s)
}
