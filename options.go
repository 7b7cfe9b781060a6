package catalogyaml

import (
	"fmt"
	"strings"

	slog "github.com/sagikazarmark/slog-shim"
	"github.com/samber/lo"

	"github.com/lingokit/catalogyaml/allowlist"
	"github.com/lingokit/catalogyaml/internal/dumper"
)

// Option configures an Adapter.
type Option interface {
	apply(o *options)
}

type optionFunc func(o *options)

func (fn optionFunc) apply(o *options) {
	fn(o)
}

// KeyOrder selects the order mapping keys are written in.
type KeyOrder string

const (
	// KeyOrderInsertion keeps the order keys were inserted or parsed in.
	KeyOrderInsertion KeyOrder = "insertion"

	// KeyOrderSorted writes keys in byte-wise order.
	KeyOrderSorted KeyOrder = "sorted"
)

type options struct {
	permitted []allowlist.Entry
	lineWidth int
	keyOrder  KeyOrder
	indent    int
	logger    *slog.Logger

	err error
}

func defaultOptions() options {
	return options{
		keyOrder: KeyOrderInsertion,
		indent:   dumper.DefaultIndent,
		logger:   discardLogger(),
	}
}

func (o *options) fail(option, format string, args ...any) {
	if o.err == nil {
		o.err = InvalidOptionError{Option: option, Reason: fmt.Sprintf(format, args...)}
	}
}

// WithPermittedClasses permits the named tags in addition to the built-in
// minimal set. A name is a tag, optionally followed by "=kind",
// for example "!!timestamp" or "!money=string". Blank names are ignored.
func WithPermittedClasses(names ...string) Option {
	names = lo.Compact(lo.Map(names, func(name string, _ int) string {
		return strings.TrimSpace(name)
	}))

	return optionFunc(func(o *options) {
		for _, name := range names {
			entry, err := allowlist.ParseEntry(name)
			if err != nil {
				o.fail("permitted_classes", "%v", err)
				return
			}
			o.permitted = append(o.permitted, entry)
		}
	})
}

// WithPermittedEntries permits the given tags in addition to the built-in minimal set.
func WithPermittedEntries(entries ...allowlist.Entry) Option {
	return optionFunc(func(o *options) {
		o.permitted = append(o.permitted, entries...)
	})
}

// WithLineWidth folds long plain values at spaces once a line exceeds n
// columns. Zero or a negative width never folds, which is the default.
func WithLineWidth(n int) Option {
	return optionFunc(func(o *options) {
		o.lineWidth = max(n, 0)
	})
}

// WithKeyOrder sets the order mapping keys are written in.
func WithKeyOrder(order KeyOrder) Option {
	return optionFunc(func(o *options) {
		switch order {
		case KeyOrderInsertion, KeyOrderSorted:
			o.keyOrder = order
		default:
			o.fail("key_order", "unknown key order %q", string(order))
		}
	})
}

// WithIndent sets the number of spaces per nesting level, between 1 and 9.
func WithIndent(n int) Option {
	return optionFunc(func(o *options) {
		if n < 1 || n > 9 {
			o.fail("indent", "must be between 1 and 9, got %d", n)
			return
		}
		o.indent = n
	})
}
