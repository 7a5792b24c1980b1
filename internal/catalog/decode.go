package catalog

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode converts raw configuration entries (as produced by viper for a YAML list)
// into catalog items. Unknown keys are rejected to catch typos in config files.
func Decode(raw any) ([]Item, error) {
	if raw == nil {
		return nil, nil
	}

	var items []Item
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &items,
	})
	if err != nil {
		return nil, fmt.Errorf("creating catalog decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	return items, nil
}

// FromConfig builds a catalog from raw config entries, falling back to the
// reference catalog when no entries are configured.
func FromConfig(raw any) (*Catalog, error) {
	items, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return Default(), nil
	}

	return New(items)
}
