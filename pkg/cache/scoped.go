package cache

// ScopedKeyer prefixes every key of an inner [Keyer]. The server uses it to
// keep several issuers' entries apart in one Redis database:
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "podoc:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, falling back to [DefaultKeyer] when nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}

// AssetKey implements [Keyer].
func (k *ScopedKeyer) AssetKey(ref string) string { return k.prefix + k.inner.AssetKey(ref) }

// OrderKey implements [Keyer].
func (k *ScopedKeyer) OrderKey(number string) string { return k.prefix + k.inner.OrderKey(number) }
