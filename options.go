package fcs

import "github.com/arloliu/fcs/internal/options"

type decodeConfig struct {
	fingerprints bool
	strict       bool
}

func newDecodeConfig(opts []DecodeOption) (*decodeConfig, error) {
	cfg := &decodeConfig{fingerprints: true}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DecodeOption configures Decode and DecodeMetadata.
type DecodeOption = options.Option[*decodeConfig]

// WithFingerprints enables or disables xxHash64 fingerprints of the text and
// data segments. Enabled by default.
func WithFingerprints(enabled bool) DecodeOption {
	return options.NoError(func(c *decodeConfig) {
		c.fingerprints = enabled
	})
}

// WithStrictEventCount makes Decode verify that the number of decoded values
// is a whole number of $PAR sized events and, when $TOT is present, that it
// holds exactly $TOT events. Disabled by default.
func WithStrictEventCount(enabled bool) DecodeOption {
	return options.NoError(func(c *decodeConfig) {
		c.strict = enabled
	})
}
