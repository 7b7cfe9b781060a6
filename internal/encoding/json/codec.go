package json

import (
	"encoding/json"

	"github.com/lingokit/catalogyaml/internal/encoding/codec"
)

// Codec implements the codec.Codec interface for JSON encoding.
type Codec struct{}

func New() codec.Codec {
	return Codec{}
}

func (Codec) Encode(v map[string]any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (Codec) Decode(b []byte, v map[string]any) error {
	return json.Unmarshal(b, &v)
}
