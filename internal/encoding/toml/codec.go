package toml

import (
	"github.com/pelletier/go-toml"

	"github.com/lingokit/catalogyaml/internal/encoding/codec"
)

// Codec implements the codec.Codec interface for TOML encoding.
type Codec struct{}

func New() codec.Codec {
	return Codec{}
}

func (Codec) Encode(v map[string]any) ([]byte, error) {
	t, err := toml.TreeFromMap(v)
	if err != nil {
		return nil, err
	}

	s, err := t.ToTomlString()
	if err != nil {
		return nil, err
	}

	return []byte(s), nil
}

func (Codec) Decode(b []byte, v map[string]any) error {
	tree, err := toml.LoadBytes(b)
	if err != nil {
		return err
	}

	for key, value := range tree.ToMap() {
		v[key] = value
	}

	return nil
}
