package hcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// original form of the data.
const original = `# catalog settings
data "yaml" {
  permitted_classes = ["!!timestamp", "!money=string"]
  line_width = 80
  key_order = "sorted"
}
`

// data is the generic representation of the settings.
var data = map[string]any{
	"data": map[string]any{
		"yaml": map[string]any{
			"permitted_classes": []any{"!!timestamp", "!money=string"},
			"line_width":        80,
			"key_order":         "sorted",
		},
	},
}

func TestCodec_Encode(t *testing.T) {
	codec := Codec{}

	settings := map[string]any{
		"data": map[string]any{
			"yaml": map[string]any{"key_order": "sorted"},
		},
	}

	b, err := codec.Encode(settings)
	require.NoError(t, err)

	v := map[string]any{}
	require.NoError(t, codec.Decode(b, v))
	assert.Equal(t, settings, v)
}

func TestCodec_Decode(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		codec := Codec{}

		v := map[string]any{}

		err := codec.Decode([]byte(original), v)
		require.NoError(t, err)

		assert.Equal(t, data, v)
	})

	t.Run("NestedBlocks", func(t *testing.T) {
		codec := Codec{}

		v := map[string]any{}

		err := codec.Decode([]byte("data {\n  yaml {\n    key_order = \"sorted\"\n  }\n}\n"), v)
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"data": map[string]any{"yaml": map[string]any{"key_order": "sorted"}}}, v)
	})

	t.Run("InvalidData", func(t *testing.T) {
		codec := Codec{}

		v := map[string]any{}

		err := codec.Decode([]byte(`invalid data`), v)
		require.Error(t, err)

		t.Logf("decoding failed as expected: %s", err)
	})
}
