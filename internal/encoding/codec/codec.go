package codec

// Codec reads and writes settings files as generic maps.
type Codec interface {
	// Decode decodes the contents of b into v.
	Decode(b []byte, v map[string]any) error

	// Encode encodes the contents of v into a byte representation.
	Encode(v map[string]any) ([]byte, error)
}
