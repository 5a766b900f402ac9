package cache

// ScopedKeyer prepends a fixed namespace to every key of an inner Keyer so
// several collections can share one Redis database.
//
//	keyer := NewScopedKeyer(nil, "squiggle:mainnet:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer scopes inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(seed string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(seed, opts)
}

func (k *ScopedKeyer) TokenKey(tokenID string) string {
	return k.prefix + k.inner.TokenKey(tokenID)
}
