package logstream

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/idleman/staabler/pkg/record"
	"github.com/idleman/staabler/pkg/schema"
)

// RecoveryReport summarizes what Open found while replaying an existing
// file: how many frames validated cleanly, and whether a trailing
// partial frame (left by a writer that crashed mid-write) was truncated
// away.
type RecoveryReport struct {
	FramesValidated int64
	FramesTruncated int64
	FileSizeBefore  int64
	FileSizeAfter   int64
	RecoveryTime    time.Duration
}

// Stream is an append-only, replay-on-open record log. Every write is a
// self-describing frame: a schema id, that schema's canonical JSON the
// first time this file sees it, and the record body. Stream never
// mutates a previously written frame; reading back what Open plus a
// Cursor replay produces is the only way to observe prior state.
type Stream struct {
	handle      NativeHandle
	cache       *blockCache
	registry    *streamRegistry
	projections []Projection
	batches     batchDiagnostics

	writeOffset int64
}

// Open replays handle from the start, validating every frame it
// contains and, for every frame any of projections.Match accepts,
// synchronously invoking that projection's Handle before live writes are
// possible — mirroring spec's "replay invokes handle before any live
// writes". A trailing partial frame — the signature of a writer that
// crashed mid-append — is truncated away rather than surfaced as an
// error, the best-effort crash recovery a single-writer append log can
// offer without a write-ahead journal.
func Open(handle NativeHandle, projections ...Projection) (*Stream, *RecoveryReport, error) {
	start := time.Now()
	size, err := handle.Stat()
	if err != nil {
		return nil, nil, err
	}

	s := &Stream{
		handle:      handle,
		cache:       newBlockCache(handle, defaultBlockSize),
		registry:    newStreamRegistry(),
		projections: projections,
	}

	report := &RecoveryReport{FileSizeBefore: size}

	cursor := newReplayCursor(s)
	var lastValidOffset int64
	for {
		startPos := cursor.offset
		ok, err := cursor.advance()
		if err != nil {
			break
		}
		if !ok {
			lastValidOffset = cursor.offset
			break
		}
		report.FramesValidated++
		lastValidOffset = cursor.offset
		if err := s.notifyProjections(cursor.lastSchema, cursor.lastBody, startPos, cursor.offset); err != nil {
			return nil, nil, err
		}
	}

	if lastValidOffset < size {
		report.FramesTruncated = 1
		if err := s.truncate(lastValidOffset); err != nil {
			return nil, nil, err
		}
	}

	s.writeOffset = lastValidOffset
	report.FileSizeAfter = lastValidOffset
	report.RecoveryTime = time.Since(start)
	return s, report, nil
}

// notifyProjections decodes body into a Record once (if any projection's
// Match accepts the frame) and calls Handle on each accepting projection.
func (s *Stream) notifyProjections(sch *schema.Schema, body []byte, startPos, endPos int64) error {
	if len(s.projections) == 0 {
		return nil
	}
	var rec *record.Record
	for _, p := range s.projections {
		if !p.Match(sch, startPos, endPos) {
			continue
		}
		if rec == nil {
			var err error
			rec, err = record.New(sch, body)
			if err != nil {
				return err
			}
		}
		if err := p.Handle(rec, startPos, endPos); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stream) truncate(offset int64) error {
	type truncater interface {
		Truncate(int64) error
	}
	if t, ok := s.handle.(truncater); ok {
		if err := t.Truncate(offset); err != nil {
			return err
		}
	}
	s.cache.InvalidateFrom(offset)
	return nil
}

// Stats reports the stream's current on-disk footprint.
func (s *Stream) Stats() (size int64, frames int64) {
	return s.writeOffset, -1
}

// WriteOne appends a single record, returning the byte offset it was
// written at.
func (s *Stream) WriteOne(rec *record.Record) (int64, error) {
	offsets, err := s.writeManySync([]*record.Record{rec})
	if err != nil {
		return 0, err
	}
	return offsets[0], nil
}

// WriteMany appends a batch of records as a single scatter/gather write,
// returning each record's byte offset in order. Records need not share a
// schema: per spec §4.6, each record's own schema is looked up in the
// stream's local registry independently, and a schema blob is emitted
// the first time this stream sees that particular schema id — wherever
// in the batch it first appears — not just once for the whole call.
func (s *Stream) WriteMany(recs []*record.Record) ([]int64, error) {
	return s.writeManySync(recs)
}

// frameSpec is one record's resolved write plan: its schema, its body
// bytes, and the schema blob to embed (nil if this stream, or an earlier
// record in this same batch, has already established that schema id).
type frameSpec struct {
	sch  *schema.Schema
	body []byte
	blob []byte
}

func (s *Stream) writeManySync(recs []*record.Record) ([]int64, error) {
	if len(recs) == 0 {
		return nil, nil
	}

	specs := make([]frameSpec, len(recs))
	seenInBatch := make(map[uint64]bool, len(recs))
	for i, rec := range recs {
		sch := rec.Schema()
		var blob []byte
		if !seenInBatch[sch.ID()] && s.registry.needsBlob(sch) {
			blob = sch.CanonicalJSON()
			seenInBatch[sch.ID()] = true
		}
		specs[i] = frameSpec{sch: sch, body: rec.Buffer(), blob: blob}
	}

	offsets := make([]int64, len(specs))
	buffers := make([][]byte, 0, len(specs)*2)
	expected := 0
	cursor := s.writeOffset

	for i, f := range specs {
		header := make([]byte, frameHeaderLen)
		encodeFrameHeader(header, frameHeader{
			SchemaID:  f.sch.ID(),
			BodyLen:   uint32(len(f.body)),
			SchemaLen: uint32(len(f.blob)),
		})

		offsets[i] = cursor
		buffers = append(buffers, header)
		expected += len(header)
		if len(f.blob) > 0 {
			buffers = append(buffers, f.blob)
			expected += len(f.blob)
		}
		buffers = append(buffers, f.body)
		expected += len(f.body)

		cursor += frameTotalLen(frameHeader{SchemaLen: uint32(len(f.blob)), BodyLen: uint32(len(f.body))})
	}

	n, err := s.handle.WritevSync(buffers)
	if err != nil {
		return nil, err
	}
	if n != expected {
		return nil, &StreamWriteError{Wrote: n, Expected: expected}
	}

	for _, f := range specs {
		if len(f.blob) > 0 {
			s.registry.markWritten(f.sch)
		}
	}
	s.cache.InvalidateFrom(s.writeOffset)
	batchStart := s.writeOffset
	s.writeOffset = cursor
	s.batches.record(batchStart, cursor, len(specs))

	if len(s.projections) > 0 {
		for i, f := range specs {
			start := offsets[i]
			end := start + frameTotalLen(frameHeader{SchemaLen: uint32(len(f.blob)), BodyLen: uint32(len(f.body))})
			if err := s.notifyProjections(f.sch, f.body, start, end); err != nil {
				return offsets, err
			}
		}
	}
	return offsets, nil
}

// NewCursor returns a Cursor that replays this stream's frames starting
// at the beginning and continues tailing new writes until ctx is
// cancelled.
func (s *Stream) NewCursor() *Cursor {
	return newCursor(s)
}

// CopyTo drains every record currently in the stream through fn, in
// order, without blocking for future writes.
func (s *Stream) CopyTo(fn func(sch *schema.Schema, body []byte) error) error {
	c := newReplayCursor(s)
	for {
		ok, err := c.advance()
		if err != nil {
			return errors.Wrap(err, "logstream: copy")
		}
		if !ok {
			return nil
		}
		if err := fn(c.lastSchema, c.lastBody); err != nil {
			return err
		}
	}
}

// Close releases the stream's handle.
func (s *Stream) Close() error {
	return s.handle.Close()
}
