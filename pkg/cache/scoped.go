package cache

import "strings"

// ScopedKeyer prefixes every key of an inner Keyer with a namespace. The
// CLI and server scope keys by release, so layouts cached by one build of
// the placement code are never served by another.
type ScopedKeyer struct {
	inner Keyer
	scope string
}

// NewScopedKeyer wraps inner, or the default keyer when nil, so that keys
// start with "<scope>:". An empty scope leaves keys unchanged.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	scope = strings.TrimSuffix(scope, ":")
	if scope == "" {
		return inner
	}
	return &ScopedKeyer{inner: inner, scope: scope + ":"}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(specHash string, opts LayoutKeyOpts) string {
	return k.scope + k.inner.LayoutKey(specHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return k.scope + k.inner.ArtifactKey(specHash, opts)
}
