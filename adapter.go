// Package catalogyaml reads and writes translation catalogs stored as YAML.
//
// Parsing is closed-world: a value is only materialized when its tag,
// explicit or implied, is on the adapter's permitted list. The list always
// holds the plain YAML types (strings, numbers, booleans, null, sequences,
// mappings and merge keys); timestamps, binary data and custom tags must be
// permitted with WithPermittedClasses or WithPermittedEntries.
//
// Dumping is canonical: a tree has exactly one textual form. UTF-8 content,
// emoji included, is written as is, and strings spanning several lines are
// written as literal block scalars.
package catalogyaml

import (
	slog "github.com/sagikazarmark/slog-shim"

	"github.com/lingokit/catalogyaml/allowlist"
	"github.com/lingokit/catalogyaml/internal/dumper"
	"github.com/lingokit/catalogyaml/internal/parser"
	"github.com/lingokit/catalogyaml/tree"
)

// Adapter parses and dumps catalogs with a fixed set of options.
// It is immutable and safe for concurrent use.
type Adapter struct {
	list   *allowlist.List
	dump   dumper.Config
	logger *slog.Logger
}

// New returns an Adapter configured by opts.
// The error is an InvalidOptionError when an option value is unusable.
func New(opts ...Option) (*Adapter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	a := &Adapter{
		list: allowlist.New(o.permitted...),
		dump: dumper.Config{
			Indent:    o.indent,
			LineWidth: o.lineWidth,
			SortKeys:  o.keyOrder == KeyOrderSorted,
		},
		logger: o.logger,
	}

	a.logger.Debug("adapter configured",
		slog.Int("permitted", a.list.Len()),
		slog.Int("indent", a.dump.Indent),
		slog.Int("line_width", a.dump.LineWidth),
		slog.Bool("sort_keys", a.dump.SortKeys),
	)

	return a, nil
}

// Parse decodes a single YAML document into a tree.
//
// An empty document yields an empty tree. The error is a SyntaxError for
// malformed input and a DisallowedTypeError for a tag that is not permitted;
// no partial tree is returned.
func (a *Adapter) Parse(src []byte) (*tree.Tree, error) {
	t, err := parser.Parse(src, a.list)
	if err != nil {
		return nil, translate(err)
	}

	a.logger.Debug("parsed document", slog.Int("bytes", len(src)), slog.Int("keys", t.Len()))

	return t, nil
}

// Dump renders t in canonical form. The error is an InvalidTreeError when t
// cannot be represented, in which case no output is returned.
func (a *Adapter) Dump(t *tree.Tree) ([]byte, error) {
	out, err := dumper.Dump(t, a.dump)
	if err != nil {
		return nil, translate(err)
	}

	a.logger.Debug("dumped document", slog.Int("keys", t.Len()), slog.Int("bytes", len(out)))

	return out, nil
}

// DumpValue converts generic data, such as a map[string]any, into a tree
// and dumps it. Go maps carry no order, so their keys are written sorted.
func (a *Adapter) DumpValue(v any) ([]byte, error) {
	n, err := tree.FromValue(v)
	if err != nil {
		return nil, translate(err)
	}

	t, ok := n.(*tree.Tree)
	if !ok {
		return nil, InvalidTreeError{Reason: "document root must be a mapping"}
	}

	return a.Dump(t)
}

// Permitted returns the tags the adapter materializes, built-in ones first.
func (a *Adapter) Permitted() []allowlist.Entry {
	return a.list.Entries()
}

// Parse decodes src with an adapter configured by opts.
func Parse(src []byte, opts ...Option) (*tree.Tree, error) {
	a, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return a.Parse(src)
}

// Dump renders t with an adapter configured by opts.
func Dump(t *tree.Tree, opts ...Option) ([]byte, error) {
	a, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return a.Dump(t)
}
