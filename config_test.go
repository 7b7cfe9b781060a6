package catalogyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingokit/catalogyaml/internal/testutil"
)

var settingsFiles = map[string]string{
	"/etc/catalog.yml": `data:
  yaml:
    permitted_classes:
      - "!!timestamp"
      - "!money=string"
    line_width: 80
    key_order: sorted
    indent: 4
`,
	"/etc/catalog.json": `{
  "data": {
    "yaml": {
      "permitted_classes": ["!!timestamp", "!money=string"],
      "line_width": 80,
      "key_order": "sorted",
      "indent": 4
    }
  }
}`,
	"/etc/catalog.toml": `[data.yaml]
permitted_classes = "!!timestamp, !money=string"
line_width = 80
key_order = "sorted"
indent = 4
`,
	"/etc/catalog.ini": `; catalog settings
[data.yaml]
permitted_classes = !!timestamp, !money=string
line_width = 80
key_order = sorted
indent = 4
`,
	"/etc/catalog.properties": `data.yaml.permitted_classes = !!timestamp,!money=string
data.yaml.line_width = 80
data.yaml.key_order = sorted
data.yaml.indent = 4
`,
	"/etc/catalog.hcl": `data "yaml" {
  permitted_classes = ["!!timestamp", "!money=string"]
  line_width = 80
  key_order = "sorted"
  indent = 4
}
`,
	"/etc/upper.yaml":   "Data:\n  YAML:\n    line_width: \"72\"\n",
	"/etc/other.yaml":   "search:\n  paths: [app]\n",
	"/etc/broken.yaml":  "data: [\n",
	"/etc/badtype.yaml": "data:\n  yaml:\n    indent: four\n",
	"/etc/catalog.xml":  "<data/>\n",
}

func TestReadConfig(t *testing.T) {
	fs := testutil.MemFs(t, settingsFiles)

	want := Config{
		PermittedClasses: []string{"!!timestamp", "!money=string"},
		LineWidth:        80,
		KeyOrder:         "sorted",
		Indent:           4,
	}

	for _, path := range []string{
		"/etc/catalog.yml",
		"/etc/catalog.json",
		"/etc/catalog.toml",
		"/etc/catalog.ini",
		"/etc/catalog.properties",
		"/etc/catalog.hcl",
	} {
		t.Run(path, func(t *testing.T) {
			cfg, err := ReadConfig(fs, path)
			require.NoError(t, err)

			assert.Equal(t, want, cfg)
		})
	}

	t.Run("CaseInsensitiveSections", func(t *testing.T) {
		cfg, err := ReadConfig(fs, "/etc/upper.yaml")
		require.NoError(t, err)

		assert.Equal(t, Config{LineWidth: 72}, cfg)
	})

	t.Run("NoSection", func(t *testing.T) {
		cfg, err := ReadConfig(fs, "/etc/other.yaml")
		require.NoError(t, err)

		assert.Equal(t, Config{}, cfg)
		assert.Empty(t, cfg.Options())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := ReadConfig(fs, "/etc/missing.yaml")
		assert.Error(t, err)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := ReadConfig(fs, "/etc/catalog.xml")

		var unsupported UnsupportedConfigError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "xml", string(unsupported))
	})

	t.Run("ParseError", func(t *testing.T) {
		for _, path := range []string{"/etc/broken.yaml", "/etc/badtype.yaml"} {
			_, err := ReadConfig(fs, path)

			var parseErr ConfigParseError
			require.ErrorAs(t, err, &parseErr, path)
			assert.NotNil(t, parseErr.Unwrap(), path)
		}
	})
}

func TestConfig_Options(t *testing.T) {
	fs := testutil.MemFs(t, settingsFiles)

	cfg, err := ReadConfig(fs, "/etc/catalog.yml")
	require.NoError(t, err)

	a, err := New(cfg.Options()...)
	require.NoError(t, err)

	parsed, err := a.Parse([]byte("b: !money 9.99 EUR\na: 2024-01-02\n"))
	require.NoError(t, err)

	out, err := a.Dump(parsed)
	require.NoError(t, err)
	assert.Equal(t, "---\na: 2024-01-02\nb: !money 9.99 EUR\n", string(out))

	t.Run("Invalid", func(t *testing.T) {
		_, err := New(Config{KeyOrder: "reverse"}.Options()...)

		var optErr InvalidOptionError
		require.ErrorAs(t, err, &optErr)
		assert.Equal(t, "key_order", optErr.Option)
	})
}

func TestSupportedExts(t *testing.T) {
	assert.Equal(t, []string{"hcl", "ini", "json", "prop", "properties", "props", "tfvars", "toml", "yaml", "yml"}, SupportedExts())
}
