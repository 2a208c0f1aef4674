//go:build darwin

package volsearch

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const maxPathLen = 1024 // PATH_MAX

// pathResolver maps (fsid, objid) handles back to absolute paths via
// fsgetpath. The path buffer is reused across calls.
type pathResolver struct {
	buf []byte
}

// NewResolver creates the platform Resolver.
func NewResolver() (Resolver, error) {
	return &pathResolver{buf: make([]byte, maxPathLen)}, nil
}

func (r *pathResolver) Resolve(m Match) (string, error) {
	fsid := unix.Fsid{Val: m.FSID}
	n, err := unix.Fsgetpath(r.buf, &fsid, m.Obj)
	if err != nil {
		return "", fmt.Errorf("fsgetpath: %w", err)
	}
	path := r.buf[:n]
	// The returned length counts the NUL terminator.
	if len(path) > 0 && path[len(path)-1] == 0 {
		path = path[:len(path)-1]
	}
	return string(path), nil
}
