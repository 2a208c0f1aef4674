//go:build !darwin

package walk

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/bamsammich/scour/internal/attrbulk"
)

// DefaultBufferSize is accepted for interface parity with the darwin
// lister; this implementation batches by entry count instead.
const DefaultBufferSize = 256 * 1024

const statBatchSize = 1024

// statLister emulates the bulk-fetch contract where getattrlistbulk is
// unavailable: names are read in batches and each entry is lstated. Far
// slower per entry, but the Walker above it is none the wiser.
type statLister struct {
	entries []attrbulk.Entry
}

// NewLister creates the platform Lister. bufSize is ignored.
func NewLister(bufSize int) Lister {
	_ = bufSize
	return &statLister{}
}

func (l *statLister) OpenDir(path string) (DirHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &statDir{l: l, f: f, dir: path}, nil
}

type statDir struct {
	l   *statLister
	f   *os.File
	dir string
}

func (d *statDir) Next() ([]attrbulk.Entry, error) {
	for {
		names, err := d.f.Readdirnames(statBatchSize)
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("readdir %s: %w", d.dir, err)
		}

		entries := d.l.entries[:0]
		var st unix.Stat_t
		for _, name := range names {
			if err := unix.Lstat(JoinChild(d.dir, name), &st); err != nil {
				// The entry vanished or is unreadable; skip it. The
				// walk carries on with the rest of the batch.
				continue
			}
			e := attrbulk.Entry{Name: name}
			switch st.Mode & unix.S_IFMT {
			case unix.S_IFREG:
				e.Kind = attrbulk.ObjRegular
				e.Logical = st.Size
				e.Physical = st.Blocks * 512
				e.HasLogical = true
				e.HasPhysical = true
			case unix.S_IFDIR:
				e.Kind = attrbulk.ObjDir
			case unix.S_IFLNK:
				e.Kind = attrbulk.ObjSymlink
			case unix.S_IFBLK:
				e.Kind = attrbulk.ObjBlock
			case unix.S_IFCHR:
				e.Kind = attrbulk.ObjChar
			case unix.S_IFSOCK:
				e.Kind = attrbulk.ObjSocket
			case unix.S_IFIFO:
				e.Kind = attrbulk.ObjFifo
			}
			entries = append(entries, e)
		}
		d.l.entries = entries
		if len(entries) == 0 {
			// Every name in the batch failed to stat; read the next
			// batch rather than reporting the directory exhausted.
			continue
		}
		return entries, nil
	}
}

func (d *statDir) Close() error {
	return d.f.Close()
}
