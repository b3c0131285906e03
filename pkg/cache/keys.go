package cache

import "fmt"

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey identifies the laid-out spec produced from a spec.
	LayoutKey(specHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a laid-out spec.
	ArtifactKey(specHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the layout options that change the result.
type LayoutKeyOpts struct {
	// Minimums names the minimum-size table used for warnings.
	Minimums string `json:"minimums,omitempty"`
	// Strategies lists the registered building types, so registering a
	// new placer invalidates earlier layouts.
	Strategies []string `json:"strategies,omitempty"`
}

// ArtifactKeyOpts holds the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// DefaultKeyer builds keys of the form "<stage>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(specHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", specHash, opts)
}

// ArtifactKey implements Keyer. The format stays readable in the key so a
// cache can be inspected by format.
func (DefaultKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), specHash, opts)
}

var _ Keyer = DefaultKeyer{}
