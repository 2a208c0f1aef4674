//go:build !darwin || !cgo

package volsearch

// NewSearcher reports that the search primitive is unavailable.
func NewSearcher() (Searcher, error) {
	return nil, ErrUnsupported
}
