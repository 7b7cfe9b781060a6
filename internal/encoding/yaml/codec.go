package yaml

import (
	"gopkg.in/yaml.v3"

	"github.com/lingokit/catalogyaml/internal/encoding/codec"
)

// Codec implements the codec.Codec interface for YAML encoding.
type Codec struct{}

func New() codec.Codec {
	return Codec{}
}

func (Codec) Encode(v map[string]any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (Codec) Decode(b []byte, v map[string]any) error {
	return yaml.Unmarshal(b, &v)
}
