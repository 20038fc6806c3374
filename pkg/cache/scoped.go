package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, for
// example when a staging and a production server share one Redis database:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// ParseKey generates a prefixed parse key.
func (k *ScopedKeyer) ParseKey(textHash string, opts ParseKeyOpts) string {
	return k.prefix + k.inner.ParseKey(textHash, opts)
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(graphHash, output string) string {
	return k.prefix + k.inner.RenderKey(graphHash, output)
}
