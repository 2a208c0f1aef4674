//go:build darwin && cgo

package volsearch

/*
#include <sys/attr.h>
#include <sys/param.h>
#include <sys/mount.h>
#include <errno.h>
#include <stdlib.h>
#include <string.h>

// Packed parameter layouts required by searchfs(2). The name search
// attribute is an attrreference followed by the pattern bytes; the
// second parameter block is an empty reference.
struct packed_name_attr {
	u_int32_t            size;
	struct attrreference ref;
	char                 name[PATH_MAX];
};

struct packed_attr_ref {
	u_int32_t            size;
	struct attrreference ref;
};

// scour_searchfs performs one searchfs call, asking for fsid+objid per
// match. Returns 0, EAGAIN (more results), EBUSY (catalog busy) or any
// other errno. *matches is set to the number of results in resultbuf.
static int
scour_searchfs(const char *vol, const char *pattern, unsigned int opts,
               unsigned int maxmatches, unsigned int timelimit,
               void *resultbuf, size_t resultbufsize,
               searchstate_t *state, unsigned long *matches)
{
	struct fssearchblock    sb;
	struct attrlist         rl;
	struct packed_name_attr info1;
	struct packed_attr_ref  info2;

	memset(&sb, 0, sizeof(sb));
	sb.searchattrs.bitmapcount = ATTR_BIT_MAP_COUNT;
	sb.searchattrs.commonattr  = ATTR_CMN_NAME;

	memset(&rl, 0, sizeof(rl));
	rl.bitmapcount = ATTR_BIT_MAP_COUNT;
	rl.commonattr  = ATTR_CMN_FSID | ATTR_CMN_OBJID;
	sb.returnattrs      = &rl;
	sb.returnbuffer     = resultbuf;
	sb.returnbuffersize = resultbufsize;

	memset(&info1, 0, sizeof(info1));
	strlcpy(info1.name, pattern, sizeof(info1.name));
	info1.ref.attr_dataoffset = sizeof(struct attrreference);
	info1.ref.attr_length     = (u_int32_t)strlen(info1.name) + 1;
	info1.size = sizeof(struct attrreference) + info1.ref.attr_length;
	sb.searchparams1       = &info1;
	sb.sizeofsearchparams1 = info1.size + sizeof(u_int32_t);

	memset(&info2, 0, sizeof(info2));
	info2.size = sizeof(struct attrreference);
	info2.ref.attr_dataoffset = sizeof(struct attrreference);
	sb.searchparams2       = &info2;
	sb.sizeofsearchparams2 = sizeof(info2);

	sb.maxmatches       = maxmatches;
	sb.timelimit.tv_sec = timelimit;

	*matches = 0;
	if (searchfs(vol, &sb, matches, 0, opts, state) == -1)
		return errno;
	return 0;
}
*/
import "C"

import (
	"encoding/binary"
	"fmt"
	"syscall"
	"time"
	"unsafe"
)

// packed_result: u32 size, fsid (2×i32), fsobj_id (2×u32).
const resultRecordSize = 20

// fsSearcher drives searchfs over one volume. The continuation state and
// the result buffer live here and are reused call to call, so a searcher
// must not be shared between concurrent searches.
type fsSearcher struct {
	state   C.searchstate_t
	buf     []byte
	matches []Match
}

// NewSearcher creates the platform Searcher.
func NewSearcher() (Searcher, error) {
	return &fsSearcher{}, nil
}

func (s *fsSearcher) Search(req *Request, start bool) (Batch, error) {
	maxMatches := req.MaxMatches
	if maxMatches <= 0 {
		maxMatches = DefaultMaxMatchesCount
	}
	if want := maxMatches * resultRecordSize; len(s.buf) < want {
		s.buf = make([]byte, want)
	}

	timeLimit := req.TimeLimit
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	opts := C.uint(0)
	if start {
		// A fresh search starts from a zeroed continuation state; a
		// stale cursor from a previous request must never leak in.
		s.state = C.searchstate_t{}
		opts |= C.SRCHFS_START
	}
	if req.MatchFiles {
		opts |= C.SRCHFS_MATCHFILES
	}
	if req.MatchDirs {
		opts |= C.SRCHFS_MATCHDIRS
	}
	if !req.Exact {
		opts |= C.SRCHFS_MATCHPARTIALNAMES
	}
	if req.Negate {
		opts |= C.SRCHFS_NEGATEPARAMS
	}

	cvol := C.CString(req.Volume)
	defer C.free(unsafe.Pointer(cvol))
	cpat := C.CString(req.Pattern)
	defer C.free(unsafe.Pointer(cpat))

	var matched C.ulong
	rc := C.scour_searchfs(
		cvol, cpat, opts,
		C.uint(maxMatches), C.uint(timeLimit/time.Second),
		unsafe.Pointer(&s.buf[0]), C.size_t(len(s.buf)),
		&s.state, &matched,
	)

	switch rc {
	case 0, C.EAGAIN, C.EBUSY:
	default:
		return Batch{}, fmt.Errorf("searchfs %s: %w", req.Volume, syscall.Errno(rc))
	}

	batch := Batch{Matched: int(matched)}
	switch rc {
	case C.EAGAIN:
		batch.Status = StatusMore
	case C.EBUSY:
		batch.Status = StatusBusy
	default:
		batch.Status = StatusDone
	}
	batch.Results = s.decodeResults(int(matched))
	return batch, nil
}

// decodeResults walks the packed result records. Each record leads with
// its own size, so the walk is robust to the kernel appending attributes
// beyond fsid and objid.
func (s *fsSearcher) decodeResults(n int) []Match {
	le := binary.LittleEndian
	s.matches = s.matches[:0]
	off := 0
	for range n {
		if off+resultRecordSize > len(s.buf) {
			break
		}
		size := int(le.Uint32(s.buf[off:]))
		fsid0 := int32(le.Uint32(s.buf[off+4:]))
		fsid1 := int32(le.Uint32(s.buf[off+8:]))
		objno := le.Uint32(s.buf[off+12:])
		gen := le.Uint32(s.buf[off+16:])
		s.matches = append(s.matches, Match{
			FSID: [2]int32{fsid0, fsid1},
			Obj:  uint64(objno) | uint64(gen)<<32,
		})
		if size < resultRecordSize {
			break
		}
		off += size
	}
	return s.matches
}
