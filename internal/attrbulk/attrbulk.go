// Package attrbulk decodes the packed record buffers produced by the
// bulk directory attribute-fetch primitive (getattrlistbulk on darwin).
//
// Each record in a buffer starts with a declared total length and a
// returned-attributes bitmask; optional fields are present only when the
// corresponding bit is set. The decoder advances by the declared length,
// so records carrying attributes it does not understand are still skipped
// correctly.
package attrbulk

// Attribute bitmask bits, mirroring <sys/attr.h>. They are defined here
// rather than taken from x/sys/unix so the decoder and its tests build on
// every platform.
const (
	BitmapCount = 5 // ATTR_BIT_MAP_COUNT

	CmnName          = 0x00000001 // ATTR_CMN_NAME
	CmnObjType       = 0x00000008 // ATTR_CMN_OBJTYPE
	CmnReturnedAttrs = 0x80000000 // ATTR_CMN_RETURNED_ATTRS

	FileDataLength = 0x00000200 // ATTR_FILE_DATALENGTH
	FileAllocSize  = 0x00000400 // ATTR_FILE_DATAALLOCSIZE
)

// ObjType is the filesystem object kind tag carried in each record
// (fsobj_type_t, i.e. the vnode type).
type ObjType uint32

const (
	ObjNone ObjType = iota
	ObjRegular
	ObjDir
	ObjBlock
	ObjChar
	ObjSymlink
	ObjSocket
	ObjFifo
)

func (t ObjType) String() string {
	switch t {
	case ObjRegular:
		return "file"
	case ObjDir:
		return "dir"
	case ObjSymlink:
		return "symlink"
	case ObjBlock, ObjChar, ObjSocket, ObjFifo:
		return "special"
	default:
		return "unknown"
	}
}

// AttrSet is the returned-attributes bitmask in a record header
// (attribute_set_t). Group order matches the on-disk layout.
type AttrSet struct {
	Common uint32
	Vol    uint32
	Dir    uint32
	File   uint32
	Fork   uint32
}

// Entry is the decoded view of one record. It owns its name (copied out
// of the fetch buffer), so it stays valid after the buffer is reused.
type Entry struct {
	Name        string
	Kind        ObjType
	Logical     int64 // data length in bytes, valid when HasLogical
	Physical    int64 // allocated bytes, valid when HasPhysical
	HasLogical  bool
	HasPhysical bool
}
