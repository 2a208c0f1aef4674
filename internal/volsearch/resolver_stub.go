//go:build !darwin

package volsearch

// NewResolver reports that handle resolution is unavailable.
func NewResolver() (Resolver, error) {
	return nil, ErrUnsupported
}
