package javaproperties

import (
	"bytes"
	"sort"

	"github.com/magiconair/properties"
	"github.com/samber/lo"

	"github.com/lingokit/catalogyaml/internal/encoding/codec"
	"github.com/lingokit/catalogyaml/internal/encoding/keypath"
)

// Codec implements the codec.Codec interface for Java properties encoding.
// Nested settings are written as delimited keys, e.g. data.yaml.indent.
type Codec struct {
	KeyDelimiter string
}

func New() codec.Codec {
	return Codec{}
}

func (c Codec) Encode(v map[string]any) ([]byte, error) {
	p := properties.NewProperties()

	flattened := keypath.Flatten(v, c.keyDelimiter())

	keys := lo.Keys(flattened)
	sort.Strings(keys)

	for _, key := range keys {
		if _, _, err := p.Set(key, keypath.String(flattened[key])); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := p.WriteComment(&buf, "#", properties.UTF8); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (c Codec) Decode(b []byte, v map[string]any) error {
	p, err := properties.Load(b, properties.UTF8)
	if err != nil {
		return err
	}

	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		keypath.Set(v, key, c.keyDelimiter(), value)
	}

	return nil
}

func (c Codec) keyDelimiter() string {
	if c.KeyDelimiter == "" {
		return "."
	}

	return c.KeyDelimiter
}
