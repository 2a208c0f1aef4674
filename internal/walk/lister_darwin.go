//go:build darwin

package walk

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/bamsammich/scour/internal/attrbulk"
)

// DefaultBufferSize is the scratch buffer handed to each
// getattrlistbulk call.
const DefaultBufferSize = 256 * 1024

// bulkLister fetches directory entries with getattrlistbulk. The fetch
// buffer and the decoded entry slice are owned by the lister and reused
// across every call, so at most one DirHandle may be open at a time.
// The single-threaded Walker follows that discipline.
type bulkLister struct {
	attrs   unix.Attrlist
	buf     []byte
	entries []attrbulk.Entry
}

// NewLister creates the platform Lister. bufSize <= 0 selects
// DefaultBufferSize.
func NewLister(bufSize int) Lister {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &bulkLister{
		attrs: unix.Attrlist{
			Bitmapcount: unix.ATTR_BIT_MAP_COUNT,
			Commonattr:  unix.ATTR_CMN_RETURNED_ATTRS | unix.ATTR_CMN_NAME | unix.ATTR_CMN_OBJTYPE,
			Fileattr:    unix.ATTR_FILE_DATALENGTH | unix.ATTR_FILE_DATAALLOCSIZE,
		},
		buf: make([]byte, bufSize),
	}
}

func (l *bulkLister) OpenDir(path string) (DirHandle, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &bulkDir{l: l, fd: fd}, nil
}

type bulkDir struct {
	l  *bulkLister
	fd int
}

func (d *bulkDir) Next() ([]attrbulk.Entry, error) {
	n, err := unix.Getattrlistbulk(d.fd, &d.l.attrs, d.l.buf, 0)
	if err != nil {
		return nil, fmt.Errorf("getattrlistbulk: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	entries, err := attrbulk.AppendDecode(d.l.entries[:0], d.l.buf, n)
	d.l.entries = entries
	return entries, err
}

func (d *bulkDir) Close() error {
	return unix.Close(d.fd)
}
