package keypath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	flat := Flatten(map[string]any{
		"data": map[string]any{
			"yaml": map[any]any{"indent": 4},
		},
		"top": "x",
	}, ".")

	assert.Equal(t, map[string]any{"data.yaml.indent": 4, "top": "x"}, flat)
}

func TestSet(t *testing.T) {
	m := map[string]any{"data": "leaf"}

	Set(m, "data.yaml.indent", ".", "4")
	Set(m, "data.yaml.key_order", ".", "sorted")
	Set(m, "top", ".", "x")

	assert.Equal(t, map[string]any{
		"data": map[string]any{
			"yaml": map[string]any{"indent": "4", "key_order": "sorted"},
		},
		"top": "x",
	}, m)
}

func TestString(t *testing.T) {
	assert.Equal(t, "80", String(80))
	assert.Equal(t, "true", String(true))
	assert.Equal(t, "!!timestamp,!money", String([]any{"!!timestamp", "!money"}))
	assert.Equal(t, "a,b", String([]string{"a", "b"}))
}
