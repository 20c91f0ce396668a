package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, for example
// to keep separate deployments apart in one Redis instance.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "galaxy:staging:")
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

// CloudKey generates a prefixed key for cloud caching.
func (k *ScopedKeyer) CloudKey(opts CloudKeyOpts) string {
	return k.prefix + k.inner.CloudKey(opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(cloudKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(cloudKey, opts)
}
