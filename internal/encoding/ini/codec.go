package ini

import (
	"bytes"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/ini.v1"

	"github.com/lingokit/catalogyaml/internal/encoding/codec"
	"github.com/lingokit/catalogyaml/internal/encoding/keypath"
)

// Codec implements the codec.Codec interface for INI encoding.
// Section names are delimited paths: keys of [data.yaml] land under data.yaml.
// Keys outside any section stay at the top level.
type Codec struct {
	KeyDelimiter string
	LoadOptions  ini.LoadOptions
}

func New() codec.Codec {
	return Codec{}
}

func (c Codec) Encode(v map[string]any) ([]byte, error) {
	cfg := ini.Empty()

	flattened := keypath.Flatten(v, c.keyDelimiter())

	keys := lo.Keys(flattened)
	sort.Strings(keys)

	for _, key := range keys {
		section, name := "", key
		if i := strings.LastIndex(key, c.keyDelimiter()); i >= 0 {
			section, name = key[:i], key[i+len(c.keyDelimiter()):]
		}

		if _, err := cfg.Section(section).NewKey(name, keypath.String(flattened[key])); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (c Codec) Decode(b []byte, v map[string]any) error {
	cfg := ini.Empty(c.LoadOptions)
	if err := cfg.Append(b); err != nil {
		return err
	}

	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			name := key.Name()
			if section.Name() != ini.DefaultSection {
				name = section.Name() + c.keyDelimiter() + name
			}
			keypath.Set(v, name, c.keyDelimiter(), key.Value())
		}
	}

	return nil
}

func (c Codec) keyDelimiter() string {
	if c.KeyDelimiter == "" {
		return "."
	}

	return c.KeyDelimiter
}
