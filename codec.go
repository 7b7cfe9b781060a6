package catalogyaml

// Codec encodes generic data as canonical catalog YAML and decodes catalogs
// into generic data. It has the Encode/Decode shape of map-based settings
// codecs, so it can be registered wherever those are accepted.
type Codec struct {
	Options []Option
}

// Encode dumps v. Keys are written sorted since Go maps carry no order.
func (c Codec) Encode(v map[string]any) ([]byte, error) {
	a, err := New(c.Options...)
	if err != nil {
		return nil, err
	}

	return a.DumpValue(v)
}

// Decode parses b and stores the top-level entries in v.
// Tags and key order do not survive the conversion to generic data.
func (c Codec) Decode(b []byte, v map[string]any) error {
	a, err := New(c.Options...)
	if err != nil {
		return err
	}

	t, err := a.Parse(b)
	if err != nil {
		return err
	}

	for key, value := range t.ToMap() {
		v[key] = value
	}

	return nil
}
