package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCodec struct {
	v map[string]any
	b []byte
}

func (c *fakeCodec) Encode(_ map[string]any) ([]byte, error) {
	return c.b, nil
}

func (c *fakeCodec) Decode(_ []byte, v map[string]any) error {
	for key, value := range c.v {
		v[key] = value
	}

	return nil
}

func TestCodecRegistry_RegisterCodec(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		registry := NewCodecRegistry()

		err := registry.RegisterCodec("myformat", &fakeCodec{})
		require.NoError(t, err)
	})

	t.Run("AlreadyRegistered", func(t *testing.T) {
		registry := NewCodecRegistry()

		err := registry.RegisterCodec("myformat", &fakeCodec{})
		require.NoError(t, err)

		err = registry.RegisterCodec("myformat", &fakeCodec{})
		assert.ErrorIs(t, err, ErrCodecFormatAlreadyRegistered)
	})

	t.Run("BuiltinInUse", func(t *testing.T) {
		registry := NewCodecRegistry()

		require.NoError(t, registry.Decode("yaml", []byte("a: b"), map[string]any{}))

		err := registry.RegisterCodec("yaml", &fakeCodec{})
		assert.ErrorIs(t, err, ErrCodecFormatAlreadyRegistered)
	})
}

func TestCodecRegistry_Decode(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		registry := NewCodecRegistry()
		decoder := &fakeCodec{
			v: map[string]any{
				"key": "value",
			},
		}

		err := registry.RegisterCodec("myformat", decoder)
		require.NoError(t, err)

		v := map[string]any{}

		err = registry.Decode("myformat", []byte("key: value"), v)
		require.NoError(t, err)

		assert.Equal(t, decoder.v, v)
	})

	t.Run("Builtin", func(t *testing.T) {
		registry := NewCodecRegistry()

		for format, src := range map[string]string{
			"yaml": "key: value",
			"yml":  "key: value",
			"json": `{"key": "value"}`,
			"toml": `key = "value"`,
			"hcl":  `key = "value"`,
			"ini":  "key = value",
			"prop": "key = value",
		} {
			v := map[string]any{}

			err := registry.Decode(format, []byte(src), v)
			require.NoError(t, err, format)

			assert.Equal(t, map[string]any{"key": "value"}, v, format)
		}
	})

	t.Run("DecoderNotFound", func(t *testing.T) {
		registry := NewCodecRegistry()

		v := map[string]any{}

		err := registry.Decode("xml", nil, v)
		assert.ErrorIs(t, err, ErrCodecNotFound)
	})
}

func TestCodecRegistry_Encode(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		registry := NewCodecRegistry()
		encoder := &fakeCodec{
			b: []byte("key: value"),
		}

		err := registry.RegisterCodec("myformat", encoder)
		require.NoError(t, err)

		b, err := registry.Encode("myformat", map[string]any{"key": "value"})
		require.NoError(t, err)

		assert.Equal(t, "key: value", string(b))
	})

	t.Run("EncoderNotFound", func(t *testing.T) {
		registry := NewCodecRegistry()

		_, err := registry.Encode("myformat", map[string]any{"key": "value"})
		assert.ErrorIs(t, err, ErrCodecNotFound)
	})
}

func TestCodecRegistry_Formats(t *testing.T) {
	registry := NewCodecRegistry()
	require.NoError(t, registry.RegisterCodec("catalog", &fakeCodec{}))

	assert.Equal(t, []string{"catalog", "hcl", "ini", "json", "prop", "properties", "props", "tfvars", "toml", "yaml", "yml"}, registry.Formats())
}
