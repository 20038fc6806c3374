package cache

// ParseKeyOpts lists every option that changes a parse result.
type ParseKeyOpts struct {
	Format   string
	Identity string
	Window   int
	PinReuse string
}

// Keyer builds cache keys.
type Keyer interface {
	// ParseKey identifies the parse of text whose hash is textHash.
	ParseKey(textHash string, opts ParseKeyOpts) string
	// RenderKey identifies the rendering of a graph in one output format.
	RenderKey(graphHash, output string) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ParseKey implements Keyer.
func (DefaultKeyer) ParseKey(textHash string, opts ParseKeyOpts) string {
	return hashKey("parse", textHash, opts)
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(graphHash, output string) string {
	return hashKey("render", graphHash, output)
}
