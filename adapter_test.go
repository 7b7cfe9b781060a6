package catalogyaml

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	slog "github.com/sagikazarmark/slog-shim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingokit/catalogyaml/allowlist"
	"github.com/lingokit/catalogyaml/tree"
)

const multilineExample = `---
en:
  literal: |
    hello
    world

    newline
  literal_strip: |-
    hello
    world

    newline
  literal_keep: |+
    hello
    world

    newline
  folded: >
    hello
    world

    newline
  folded_strip: >-
    hello
    world

    newline
  folded_keep: >+
    hello
    world

    newline
`

const multilineCanonical = `---
en:
  literal: |
    hello
    world

    newline
  literal_strip: |-
    hello
    world

    newline
  literal_keep: |
    hello
    world

    newline
  folded: |
    hello world
    newline
  folded_strip: |-
    hello world
    newline
  folded_keep: |
    hello world
    newline
`

const yamlWithClass = `---
en:
  catalog:
    title: Catalog
    price: !ruby/object:Money
      cents: 999
      currency: EUR
`

var yamlExample = map[string]any{
	"a": "hello %{world}😀",
	"b": "foo",
	"c": map[string]any{
		"d": "hello %{name}",
	},
	"e": "ok",
}

func TestEmojiRetention(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	out, err := a.DumpValue(yamlExample)
	require.NoError(t, err)

	assert.Contains(t, string(out), "😀")
	assert.Equal(t, "---\na: hello %{world}😀\nb: foo\nc:\n  d: hello %{name}\ne: ok\n", string(out))
}

func TestParseMultiline(t *testing.T) {
	parsed, err := Parse([]byte(multilineExample))
	require.NoError(t, err)

	tests := map[string]string{
		"literal":       "hello\nworld\n\nnewline\n",
		"literal_strip": "hello\nworld\n\nnewline",
		"literal_keep":  "hello\nworld\n\nnewline\n",
		"folded":        "hello world\nnewline\n",
		"folded_strip":  "hello world\nnewline",
		"folded_keep":   "hello world\nnewline\n",
	}
	for key, want := range tests {
		got, ok := parsed.DigString("en", key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	dumped, err := Dump(parsed)
	require.NoError(t, err)
	assert.Equal(t, multilineCanonical, string(dumped))

	t.Run("LiteralIsStable", func(t *testing.T) {
		src := "---\nlocale:\n  literal: |\n    hello\n    world\n\n    newline\n"

		parsed, err := Parse([]byte(src))
		require.NoError(t, err)

		s, _ := parsed.DigString("locale", "literal")
		assert.Equal(t, "hello\nworld\n\nnewline\n", s)

		dumped, err := Dump(parsed)
		require.NoError(t, err)
		assert.Equal(t, src, string(dumped))
	})
}

func TestPermittedClasses(t *testing.T) {
	t.Run("NotPermitted", func(t *testing.T) {
		_, err := Parse([]byte(yamlWithClass))
		require.Error(t, err)

		var disallowed DisallowedTypeError
		require.True(t, errors.As(err, &disallowed))
		assert.Equal(t, "!ruby/object:Money", disallowed.Tag)
		assert.Equal(t, 5, disallowed.Line)
		assert.True(t, IsFailure(err))
	})

	t.Run("Permitted", func(t *testing.T) {
		parsed, err := Parse([]byte(yamlWithClass), WithPermittedClasses("!ruby/object:Money"))
		require.NoError(t, err)

		n, ok := parsed.Dig("en", "catalog", "price")
		require.True(t, ok)
		price := n.(*tree.Tree)
		assert.Equal(t, "!ruby/object:Money", price.Tag)

		cents, _ := price.Get("cents")
		assert.Equal(t, tree.Int(999), cents)
	})

	t.Run("ImplicitTimestamp", func(t *testing.T) {
		src := []byte("en:\n  released: 2024-01-02\n")

		_, err := Parse(src)
		var disallowed DisallowedTypeError
		require.ErrorAs(t, err, &disallowed)
		assert.Equal(t, "!!timestamp", disallowed.Tag)

		parsed, err := Parse(src, WithPermittedClasses("!!timestamp"))
		require.NoError(t, err)
		n, _ := parsed.Dig("en", "released")
		assert.True(t, tree.Equal(tree.Time(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)), n))
	})

	t.Run("Entries", func(t *testing.T) {
		parsed, err := Parse([]byte("a: !money 9.99 EUR\n"), WithPermittedEntries(allowlist.Entry{Tag: "!money", Kind: allowlist.KindSymbol}))
		require.NoError(t, err)

		n, _ := parsed.Get("a")
		assert.Equal(t, tree.Scalar{Tag: "!money", Value: tree.Symbol("9.99 EUR")}, n)
	})
}

func TestParse_SyntaxError(t *testing.T) {
	for _, src := range []string{"a: b: c\n", "a: 1\na: 2\n", "- a\n"} {
		_, err := Parse([]byte(src))

		var syntaxErr SyntaxError
		require.ErrorAs(t, err, &syntaxErr, src)
		assert.Greater(t, syntaxErr.Line, 0, src)
		assert.True(t, IsFailure(err), src)
	}
}

func TestParse_Empty(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, parsed.Len())

	out, err := Dump(parsed)
	require.NoError(t, err)
	assert.Equal(t, "--- {}\n", string(out))
}

func TestDump_InvalidTree(t *testing.T) {
	bad := tree.New()
	bad.Set("ok", tree.String("fine"))
	bad.Set("broken", tree.Seq(tree.String("a"), tree.Scalar{Value: struct{}{}}))

	out, err := Dump(bad)
	assert.Nil(t, out)

	var invalid InvalidTreeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "broken[1]", invalid.Path)
	assert.True(t, IsFailure(err))

	t.Run("DumpValue", func(t *testing.T) {
		_, err := Dump(nil)
		require.ErrorAs(t, err, &invalid)

		a, err := New()
		require.NoError(t, err)

		_, err = a.DumpValue(map[string]any{"a": map[int]string{1: "x"}})
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "a", invalid.Path)

		_, err = a.DumpValue([]any{"a"})
		require.ErrorAs(t, err, &invalid)
	})
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := map[string]Option{
		"indent":            WithIndent(0),
		"key_order":         WithKeyOrder("random"),
		"permitted_classes": WithPermittedClasses("!!timestamp", "money"),
	}

	for option, opt := range tests {
		t.Run(option, func(t *testing.T) {
			_, err := New(opt)

			var optErr InvalidOptionError
			require.ErrorAs(t, err, &optErr)
			assert.Equal(t, option, optErr.Option)
			assert.False(t, IsFailure(err))
		})
	}
}

func TestOptions(t *testing.T) {
	tr := tree.New()
	tr.Set("zeta", tree.String("last letter of a long alphabet"))
	tr.Set("alpha", tree.String("first"))

	t.Run("Defaults", func(t *testing.T) {
		out, err := Dump(tr)
		require.NoError(t, err)
		assert.Equal(t, "---\nzeta: last letter of a long alphabet\nalpha: first\n", string(out))
	})

	t.Run("Configured", func(t *testing.T) {
		out, err := Dump(tr, WithKeyOrder(KeyOrderSorted), WithLineWidth(20), WithIndent(4))
		require.NoError(t, err)
		assert.Equal(t, "---\nalpha: first\nzeta: last letter of\n    a long alphabet\n", string(out))
	})

	t.Run("NegativeLineWidth", func(t *testing.T) {
		out, err := Dump(tr, WithLineWidth(-1))
		require.NoError(t, err)
		assert.Equal(t, "---\nzeta: last letter of a long alphabet\nalpha: first\n", string(out))
	})

	t.Run("BlankClassNames", func(t *testing.T) {
		a, err := New(WithPermittedClasses("", " !!timestamp ", " "))
		require.NoError(t, err)
		assert.Len(t, a.Permitted(), len(allowlist.Minimal())+1)
	})
}

func TestRoundTrip(t *testing.T) {
	en := tree.New()
	en.Set("greeting", tree.String("Hello, %{name}! 👋"))
	en.Set("farewell", tree.String("Bye\nfor now"))
	en.Set("count", tree.Int(7))
	en.Set("price", tree.Tagged("!money", "9.99 EUR"))
	en.Set("released", tree.Time(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	en.Set("items", tree.Seq(tree.String("one"), tree.String("true"), tree.Null()))
	en.Set("nested", tree.New())

	original := tree.New()
	original.Set("en", en)

	opts := []Option{WithPermittedClasses("!money", "!!timestamp")}

	out, err := Dump(original, opts...)
	require.NoError(t, err)

	parsed, err := Parse(out, opts...)
	require.NoError(t, err)

	assert.True(t, tree.Equal(original, parsed), string(out))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a, err := New(WithLogger(logger))
	require.NoError(t, err)

	_, err = a.Parse([]byte("a: b\n"))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "parsed document")
	assert.Contains(t, buf.String(), "keys=1")

	t.Run("NilLogger", func(t *testing.T) {
		a, err := New(WithLogger(nil))
		require.NoError(t, err)

		_, err = a.Parse([]byte("a: b\n"))
		require.NoError(t, err)
	})
}

func TestAdapter_Concurrent(t *testing.T) {
	a, err := New(WithPermittedClasses("!money"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			parsed, err := a.Parse([]byte(multilineExample))
			assert.NoError(t, err)

			out, err := a.Dump(parsed)
			assert.NoError(t, err)
			assert.Equal(t, multilineCanonical, string(out))
		}()
	}
	wg.Wait()
}
