package attrbulk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Attribute data is stored in the kernel's native byte order; every
// supported darwin target is little-endian.
var bin = binary.LittleEndian

// ErrTruncated reports a record whose declared length or field offsets
// reach past the supplied buffer.
var ErrTruncated = errors.New("attrbulk: record extends past buffer")

const (
	lenSize     = 4  // leading u32 total-length field
	attrSetSize = 20 // attribute_set_t, five u32 groups
	attrRefSize = 8  // attrreference_t: i32 offset + u32 length
	headerSize  = lenSize + attrSetSize
)

// Decode interprets buf as count packed records and returns them in
// order. buf and count must come from a single bulk-fetch call. A short
// or malformed buffer is a hard error: the entries decoded before the
// fault are returned alongside it.
func Decode(buf []byte, count int) ([]Entry, error) {
	return AppendDecode(nil, buf, count)
}

// AppendDecode is Decode appending into dst to avoid per-call slice
// allocation; pass dst[:0] to reuse capacity across buffers.
func AppendDecode(dst []Entry, buf []byte, count int) ([]Entry, error) {
	off := 0
	for i := 0; i < count; i++ {
		entry, reclen, err := decodeRecord(buf[off:])
		if err != nil {
			return dst, fmt.Errorf("attrbulk: record %d of %d at offset %d: %w", i, count, off, err)
		}
		dst = append(dst, entry)
		off += reclen
	}
	return dst, nil
}

// decodeRecord decodes the record at the start of rec, returning the
// entry and the declared record length to advance by. Field presence is
// governed by the returned-attributes bitmask, never by object kind:
// records for non-regular objects simply omit the size fields, and a
// record may legally carry attributes beyond those decoded here, which
// the declared length skips over.
func decodeRecord(rec []byte) (Entry, int, error) {
	var e Entry

	if len(rec) < headerSize {
		return e, 0, ErrTruncated
	}
	reclen := int(bin.Uint32(rec))
	if reclen < headerSize {
		return e, 0, fmt.Errorf("declared length %d below header size", reclen)
	}
	if reclen > len(rec) {
		return e, 0, ErrTruncated
	}
	rec = rec[:reclen]

	returned := AttrSet{
		Common: bin.Uint32(rec[4:]),
		Vol:    bin.Uint32(rec[8:]),
		Dir:    bin.Uint32(rec[12:]),
		File:   bin.Uint32(rec[16:]),
		Fork:   bin.Uint32(rec[20:]),
	}

	// Fields follow the header in attribute-bit order. The cursor only
	// advances for attributes the bitmask declares present.
	cur := headerSize

	if returned.Common&CmnName != 0 {
		if cur+attrRefSize > reclen {
			return e, 0, ErrTruncated
		}
		// The name reference is self-relative: the offset is measured
		// from the attrreference field itself, not the record start.
		nameOff := int(int32(bin.Uint32(rec[cur:])))
		nameLen := int(bin.Uint32(rec[cur+4:]))
		start := cur + nameOff
		if start < 0 || start+nameLen > reclen {
			return e, 0, fmt.Errorf("name reference (offset %d, length %d): %w", nameOff, nameLen, ErrTruncated)
		}
		name := rec[start : start+nameLen]
		// attr_length counts the NUL terminator.
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		e.Name = string(name)
		cur += attrRefSize
	}

	if returned.Common&CmnObjType != 0 {
		if cur+4 > reclen {
			return e, 0, ErrTruncated
		}
		e.Kind = ObjType(bin.Uint32(rec[cur:]))
		cur += 4
	}

	if returned.File&FileDataLength != 0 {
		if cur+8 > reclen {
			return e, 0, ErrTruncated
		}
		e.Logical = int64(bin.Uint64(rec[cur:]))
		e.HasLogical = true
		cur += 8
	}

	if returned.File&FileAllocSize != 0 {
		if cur+8 > reclen {
			return e, 0, ErrTruncated
		}
		e.Physical = int64(bin.Uint64(rec[cur:]))
		e.HasPhysical = true
	}

	return e, reclen, nil
}
