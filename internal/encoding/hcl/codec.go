package hcl

import (
	"bytes"
	"encoding/json"

	"github.com/hashicorp/hcl"
	"github.com/hashicorp/hcl/hcl/printer"

	"github.com/lingokit/catalogyaml/internal/encoding/codec"
)

// Codec implements the codec.Codec interface for HCL encoding.
// Blocks decode to nested maps, so `data "yaml" { indent = 2 }` and
// `data { yaml { indent = 2 } }` are read the same way.
type Codec struct{}

func New() codec.Codec {
	return Codec{}
}

func (Codec) Encode(v map[string]any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	ast, err := hcl.Parse(string(b))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := printer.Fprint(&buf, ast.Node); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (Codec) Decode(b []byte, v map[string]any) error {
	raw := map[string]any{}
	if err := hcl.Unmarshal(b, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		v[key] = mergeBlocks(value)
	}

	return nil
}

// mergeBlocks folds the lists of objects hcl produces for blocks into maps.
func mergeBlocks(v any) any {
	switch v := v.(type) {
	case []map[string]any:
		merged := make(map[string]any)
		for _, m := range v {
			for key, value := range m {
				merged[key] = mergeBlocks(value)
			}
		}
		return merged
	case map[string]any:
		for key, value := range v {
			v[key] = mergeBlocks(value)
		}
		return v
	case []any:
		for i, value := range v {
			v[i] = mergeBlocks(value)
		}
		return v
	default:
		return v
	}
}
