package logstream

import "encoding/binary"

// frameHeaderLen is the fixed 16-byte header preceding every record: a
// schema id, the encoded body length, and the length of an optional
// trailing schema-JSON blob (0 when the schema was already known to the
// file).
const frameHeaderLen = 16

type frameHeader struct {
	SchemaID  uint64
	BodyLen   uint32
	SchemaLen uint32
}

func encodeFrameHeader(dst []byte, h frameHeader) {
	binary.LittleEndian.PutUint64(dst[0:8], h.SchemaID)
	binary.LittleEndian.PutUint32(dst[8:12], h.BodyLen)
	binary.LittleEndian.PutUint32(dst[12:16], h.SchemaLen)
}

func decodeFrameHeader(src []byte) frameHeader {
	return frameHeader{
		SchemaID:  binary.LittleEndian.Uint64(src[0:8]),
		BodyLen:   binary.LittleEndian.Uint32(src[8:12]),
		SchemaLen: binary.LittleEndian.Uint32(src[12:16]),
	}
}

// frameTotalLen is the total on-disk footprint of a frame: header, the
// optional schema blob, then the record body.
func frameTotalLen(h frameHeader) int64 {
	return int64(frameHeaderLen) + int64(h.SchemaLen) + int64(h.BodyLen)
}
