package allowlist

import (
	"fmt"
	"strings"
)

// Kind is the materialization rule applied to a node carrying a permitted tag.
type Kind int

const (
	// KindAuto follows the node shape: scalars become strings,
	// sequences become sequences and mappings become trees.
	KindAuto Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindNull
	KindTimestamp
	KindBinary
	KindSymbol
	KindSequence
	KindMapping
	KindMerge
)

var kindNames = map[Kind]string{
	KindAuto:      "auto",
	KindString:    "string",
	KindInt:       "int",
	KindFloat:     "float",
	KindBool:      "bool",
	KindNull:      "null",
	KindTimestamp: "timestamp",
	KindBinary:    "binary",
	KindSymbol:    "symbol",
	KindSequence:  "seq",
	KindMapping:   "map",
	KindMerge:     "merge",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown kind %q", name)
}

// Entry binds a tag to the kind it materializes as.
type Entry struct {
	Tag  string
	Kind Kind
}

func (e Entry) String() string {
	return e.Tag + "=" + e.Kind.String()
}

const longTagPrefix = "tag:yaml.org,2002:"

// standardKinds are the fixed kinds of the tags defined by the YAML schemas.
var standardKinds = map[string]Kind{
	"!!str":       KindString,
	"!!int":       KindInt,
	"!!float":     KindFloat,
	"!!bool":      KindBool,
	"!!null":      KindNull,
	"!!seq":       KindSequence,
	"!!map":       KindMapping,
	"!!merge":     KindMerge,
	"!!timestamp": KindTimestamp,
	"!!binary":    KindBinary,
}

// CanonicalTag rewrites the long yaml.org form of a tag to its "!!" shorthand.
// Any other tag is returned unchanged.
func CanonicalTag(tag string) string {
	if strings.HasPrefix(tag, longTagPrefix) {
		return "!!" + tag[len(longTagPrefix):]
	}

	return tag
}

// ParseEntry parses "tag" or "tag=kind".
//
// Standard tags get their schema kind unless one is given;
// other tags default to KindAuto.
func ParseEntry(name string) (Entry, error) {
	name = strings.TrimSpace(name)

	tag, kindName, hasKind := strings.Cut(name, "=")
	tag = CanonicalTag(strings.TrimSpace(tag))

	if err := validTag(tag); err != nil {
		return Entry{}, err
	}

	e := Entry{Tag: tag, Kind: KindAuto}
	if k, ok := standardKinds[tag]; ok {
		e.Kind = k
	}

	if hasKind {
		k, err := ParseKind(kindName)
		if err != nil {
			return Entry{}, fmt.Errorf("permitted class %q: %w", name, err)
		}
		e.Kind = k
	}

	return e, nil
}

// IsStandard reports whether tag belongs to the YAML schema tags.
func IsStandard(tag string) bool {
	_, ok := standardKinds[tag]

	return ok
}

func validTag(tag string) error {
	if strings.HasPrefix(tag, "tag:") && len(tag) > len("tag:") {
		tag = "!" + tag[len("tag:"):]
	}
	if len(tag) < 2 || tag[0] != '!' {
		return fmt.Errorf("invalid tag %q: tags start with '!' and carry a name", tag)
	}
	if tag == "!!" {
		return fmt.Errorf("invalid tag %q: missing name", tag)
	}
	if strings.ContainsAny(tag, " \t\r\n[]{}") {
		return fmt.Errorf("invalid tag %q: contains whitespace or brackets", tag)
	}

	return nil
}
