package cache

// Keyer builds cache keys.
type Keyer interface {
	// CatalogKey is the key of the connector catalog of a processing type
	// served by the definition service at baseURL.
	CatalogKey(baseURL, processingType string) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CatalogKey hashes the service URL so that catalogs of different services
// never collide.
func (DefaultKeyer) CatalogKey(baseURL, processingType string) string {
	return catalogKey(baseURL, processingType)
}
