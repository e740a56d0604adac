package structdiff

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Config holds the plain settings of an Engine, the parts that can be read
// from a configuration file. Comparators and suppliers are registered with
// options
type Config struct {
	// RegisterDefaults adds the built-in comparators after user registered ones
	RegisterDefaults bool `mapstructure:"registerDefaults"`
	// RootIndicator prefixes every rendered path, may be empty
	RootIndicator string `mapstructure:"rootIndicator"`
	// PathSeparator joins path segments
	PathSeparator string `mapstructure:"pathSeparator"`
	// ElementSegments appends the index or key of collection elements and map
	// entries to the path of their nested changes
	ElementSegments bool `mapstructure:"elementSegments"`
	// ExportedFieldsOnly limits struct comparison to exported fields
	ExportedFieldsOnly bool `mapstructure:"exportedFieldsOnly"`
	// TagName is the struct tag key that renames or skips fields
	TagName string `mapstructure:"tagName"`
}

// DefaultConfig returns the settings New starts from
func DefaultConfig() Config {
	return Config{
		RegisterDefaults: true,
		RootIndicator:    DefaultRootIndicator,
		PathSeparator:    DefaultPathSeparator,
		TagName:          DefaultTagName,
	}
}

// Validate checks the settings for values no engine can work with
func (c Config) Validate() error {
	if c.TagName == "" {
		return fmt.Errorf("%w: empty struct tag name", ErrMisconfigured)
	}
	return nil
}

// DecodeConfig reads engine settings from a generic map, as produced by
// decoding a JSON or YAML document. Keys not present keep their default
// value, unknown keys are an error
func DecodeConfig(raw map[string]any) (Config, error) {
	cfg := DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrMisconfigured, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
