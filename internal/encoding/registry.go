package encoding

import (
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/lingokit/catalogyaml/internal/encoding/codec"
	"github.com/lingokit/catalogyaml/internal/encoding/hcl"
	"github.com/lingokit/catalogyaml/internal/encoding/ini"
	"github.com/lingokit/catalogyaml/internal/encoding/javaproperties"
	"github.com/lingokit/catalogyaml/internal/encoding/json"
	"github.com/lingokit/catalogyaml/internal/encoding/toml"
	"github.com/lingokit/catalogyaml/internal/encoding/yaml"
)

const (
	// ErrCodecNotFound is returned when there is no codec registered for a format.
	ErrCodecNotFound = encodingError("codec not found for this format")

	// ErrCodecFormatAlreadyRegistered is returned when a codec is already registered for a format.
	ErrCodecFormatAlreadyRegistered = encodingError("codec already registered for this format")
)

// supportedCodecFormats constructs the built-in codecs on first use.
var supportedCodecFormats = map[string]func() codec.Codec{
	"yaml":   yaml.New,
	"yml":    yaml.New,
	"json":   json.New,
	"toml":   toml.New,
	"hcl":    hcl.New,
	"tfvars": hcl.New,
	"ini":    ini.New,

	"properties": javaproperties.New,
	"props":      javaproperties.New,
	"prop":       javaproperties.New,
}

// CodecRegistry maps file formats (extensions without the dot) to codecs.
// It is safe for concurrent use.
type CodecRegistry struct {
	codecs map[string]codec.Codec
	mu     sync.RWMutex
}

// NewCodecRegistry returns a new, initialized CodecRegistry.
func NewCodecRegistry() *CodecRegistry {
	return &CodecRegistry{
		codecs: make(map[string]codec.Codec),
	}
}

func (e *CodecRegistry) getCodecLazily(format string) (codec.Codec, error) {
	e.mu.RLock()
	c, ok := e.codecs[format]
	e.mu.RUnlock()
	if ok {
		return c, nil
	}

	newCodecFn, ok := supportedCodecFormats[format]
	if !ok {
		return nil, ErrCodecNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if c, ok := e.codecs[format]; ok {
		return c, nil
	}
	c = newCodecFn()
	e.codecs[format] = c

	return c, nil
}

func (e *CodecRegistry) Decode(format string, b []byte, v map[string]any) error {
	decoder, err := e.getCodecLazily(format)
	if err != nil {
		return err
	}

	return decoder.Decode(b, v)
}

func (e *CodecRegistry) Encode(format string, v map[string]any) ([]byte, error) {
	encoder, err := e.getCodecLazily(format)
	if err != nil {
		return nil, err
	}

	return encoder.Encode(v)
}

// RegisterCodec registers a Codec for a format.
// Registering a Codec for an already existing format is not supported.
func (e *CodecRegistry) RegisterCodec(format string, codec codec.Codec) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.codecs[format]; ok {
		return ErrCodecFormatAlreadyRegistered
	}

	e.codecs[format] = codec

	return nil
}

// Formats returns the sorted list of formats the registry can handle.
func (e *CodecRegistry) Formats() []string {
	e.mu.RLock()
	registered := lo.Keys(e.codecs)
	e.mu.RUnlock()

	formats := lo.Uniq(append(lo.Keys(supportedCodecFormats), registered...))
	sort.Strings(formats)

	return formats
}
