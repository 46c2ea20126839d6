package prim

// Variable-width payload codecs. Unlike the fixed scalars, these operate on
// an already-sliced payload range (the caller has already computed
// [startOffset, endOffset) from the record's offset slots) rather than a
// base buffer plus byteOffset.

// Utf8ByteLength returns the number of bytes s occupies when encoded.
func Utf8ByteLength(s string) int { return len(s) }

// DecodeUtf8 materializes the UTF-8 payload as a string. The returned
// string shares no memory with payload (Go string conversion copies), so
// it stays valid even after the record's buffer is reused or mutated.
func DecodeUtf8(payload []byte) string { return string(payload) }

// EncodeUtf8Into writes s's UTF-8 bytes into dst, which must be exactly
// Utf8ByteLength(s) long.
func EncodeUtf8Into(dst []byte, s string) { copy(dst, s) }

// BytesByteLength returns the number of bytes the blob occupies when
// encoded, i.e. its own length (Bytes fields store their payload verbatim).
func BytesByteLength(b []byte) int { return len(b) }

// DecodeBytes returns the payload range verbatim. Callers that need to
// retain the result beyond the record's next mutation must copy it
// themselves.
func DecodeBytes(payload []byte) []byte { return payload }

// EncodeBytesInto copies b's contents into dst, which must be exactly
// BytesByteLength(b) long.
func EncodeBytesInto(dst []byte, b []byte) { copy(dst, b) }
