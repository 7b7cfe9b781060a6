package catalogyaml

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cast"

	"github.com/lingokit/catalogyaml/internal/encoding"
)

// Config holds adapter settings read from the "data.yaml" section of a
// settings file.
type Config struct {
	PermittedClasses []string `mapstructure:"permitted_classes"`
	LineWidth        int      `mapstructure:"line_width"`
	KeyOrder         string   `mapstructure:"key_order"`
	Indent           int      `mapstructure:"indent"`
}

var settingsCodecs = encoding.NewCodecRegistry()

// SupportedExts are the settings file extensions ReadConfig understands.
func SupportedExts() []string {
	return settingsCodecs.Formats()
}

// ReadConfig reads the adapter settings stored in path on fs.
// The file format is selected by the extension, see SupportedExts.
// A file without a "data.yaml" section yields the zero Config.
func ReadConfig(fs afero.Fs, path string) (Config, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, err
	}

	raw := make(map[string]any)
	if err := settingsCodecs.Decode(ext, b, raw); err != nil {
		if errors.Is(err, encoding.ErrCodecNotFound) {
			return Config{}, UnsupportedConfigError(ext)
		}
		return Config{}, ConfigParseError{err}
	}

	return ConfigFromMap(raw)
}

// ConfigFromMap binds the "data.yaml" section of decoded settings.
// Section names match case-insensitively, and permitted_classes may be given
// as a list or as a comma-separated string.
func ConfigFromMap(raw map[string]any) (Config, error) {
	section := searchMap(raw, "data", "yaml")

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(section); err != nil {
		return Config{}, ConfigParseError{err}
	}

	if len(cfg.PermittedClasses) > 0 {
		cfg.PermittedClasses = lo.Compact(lo.Map(cfg.PermittedClasses, func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
	}

	return cfg, nil
}

// searchMap walks nested maps along path and returns the map at its end.
func searchMap(source map[string]any, path ...string) map[string]any {
	for _, key := range path {
		next, ok := lo.FindKeyBy(source, func(k string, _ any) bool {
			return strings.EqualFold(k, key)
		})
		if !ok {
			return map[string]any{}
		}

		source = cast.ToStringMap(source[next])
	}

	return source
}

// Options converts the settings into adapter options.
// Unset fields leave the adapter defaults in place.
func (c Config) Options() []Option {
	var opts []Option

	if len(c.PermittedClasses) > 0 {
		opts = append(opts, WithPermittedClasses(c.PermittedClasses...))
	}
	if c.LineWidth != 0 {
		opts = append(opts, WithLineWidth(c.LineWidth))
	}
	if c.KeyOrder != "" {
		opts = append(opts, WithKeyOrder(KeyOrder(strings.ToLower(c.KeyOrder))))
	}
	if c.Indent != 0 {
		opts = append(opts, WithIndent(c.Indent))
	}

	return opts
}
