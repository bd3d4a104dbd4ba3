package cache

// ScopedKeyer prefixes every key of an inner [Keyer], so several
// deployments can share one Redis database without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "team-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

var _ Keyer = (*ScopedKeyer)(nil)

// NewScopedKeyer wraps inner, or [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// Prefix returns the scope prepended to keys.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

func (k *ScopedKeyer) scope(key string) string { return k.prefix + key }

func (k *ScopedKeyer) ReportKey(datasetHash string, opts ReportKeyOpts) string {
	return k.scope(k.inner.ReportKey(datasetHash, opts))
}

func (k *ScopedKeyer) LayoutKey(keywordsHash string, opts LayoutKeyOpts) string {
	return k.scope(k.inner.LayoutKey(keywordsHash, opts))
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.scope(k.inner.ArtifactKey(layoutHash, opts))
}
