package cache

// Keyer derives cache keys for conversion results.
type Keyer interface {
	ConversionKey(inputHash string, opts ConversionKeyOpts) string
}

// ConversionKeyOpts lists every option that changes a conversion's output.
type ConversionKeyOpts struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Validate   bool   `json:"validate"`
	Strict     bool   `json:"strict"`
	EnvelopeID string `json:"envelope_id,omitempty"`
}

// DefaultKeyer produces unprefixed keys of the form "conv:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ConversionKey hashes the input hash together with the options.
func (DefaultKeyer) ConversionKey(inputHash string, opts ConversionKeyOpts) string {
	return hashKey("conv", inputHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, e.g. to keep the entries of
// different tool versions apart in a shared cache:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.4.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ConversionKey generates a prefixed conversion key.
func (k *ScopedKeyer) ConversionKey(inputHash string, opts ConversionKeyOpts) string {
	return k.prefix + k.inner.ConversionKey(inputHash, opts)
}
