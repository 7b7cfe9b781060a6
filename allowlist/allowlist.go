// Package allowlist implements the closed set of YAML tags a parser may
// materialize.
//
// A List always contains the minimal built-in tags (strings, numbers,
// booleans, nulls, sequences, mappings and merge keys). Everything else,
// timestamps included, must be added explicitly. Matching is exact on the
// canonical tag: listing "!money" does not permit "!money/eur".
package allowlist

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var minimal = []Entry{
	{Tag: "!!str", Kind: KindString},
	{Tag: "!!int", Kind: KindInt},
	{Tag: "!!float", Kind: KindFloat},
	{Tag: "!!bool", Kind: KindBool},
	{Tag: "!!null", Kind: KindNull},
	{Tag: "!!seq", Kind: KindSequence},
	{Tag: "!!map", Kind: KindMapping},
	{Tag: "!!merge", Kind: KindMerge},
}

// Minimal returns the built-in entries that never need configuration.
func Minimal() []Entry {
	return append([]Entry(nil), minimal...)
}

// IsMinimal reports whether tag is one of the built-in tags.
func IsMinimal(tag string) bool {
	for _, e := range minimal {
		if e.Tag == tag {
			return true
		}
	}

	return false
}

// List is an ordered, read-only set of permitted tags.
type List struct {
	entries *orderedmap.OrderedMap[string, Entry]
}

// New returns a list holding the minimal entries followed by permitted.
// A permitted entry repeating a tag overrides its kind in place.
// Built-in tags keep their built-in kind, and a standard tag given with
// KindAuto gets its schema kind.
func New(permitted ...Entry) *List {
	l := &List{entries: orderedmap.New[string, Entry]()}
	for _, e := range minimal {
		l.entries.Set(e.Tag, e)
	}
	for _, e := range permitted {
		e.Tag = CanonicalTag(e.Tag)
		if IsMinimal(e.Tag) {
			continue
		}
		if k, ok := standardKinds[e.Tag]; ok && e.Kind == KindAuto {
			e.Kind = k
		}
		l.entries.Set(e.Tag, e)
	}

	return l
}

// IsPermitted reports whether tag may be materialized.
func (l *List) IsPermitted(tag string) bool {
	_, ok := l.Lookup(tag)

	return ok
}

// Lookup returns the entry for tag.
func (l *List) Lookup(tag string) (Entry, bool) {
	if l == nil || l.entries == nil {
		for _, e := range minimal {
			if e.Tag == tag {
				return e, true
			}
		}
		return Entry{}, false
	}

	return l.entries.Get(tag)
}

// Len returns the number of permitted tags, built-ins included.
func (l *List) Len() int {
	if l == nil || l.entries == nil {
		return len(minimal)
	}

	return l.entries.Len()
}

// Entries returns the permitted entries in order.
func (l *List) Entries() []Entry {
	if l == nil || l.entries == nil {
		return Minimal()
	}

	out := make([]Entry, 0, l.entries.Len())
	for pair := l.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}

	return out
}
