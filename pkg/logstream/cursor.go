package logstream

import (
	"context"
	"sync"

	"github.com/idleman/staabler/pkg/record"
	"github.com/idleman/staabler/pkg/schema"
)

// Predicate decides whether a frame should be decoded and yielded.
// Rejected frames are still skipped past (their offset still advances)
// but never materialized into a Record.
type Predicate func(sch *schema.Schema, startPos, endPos int64) bool

// Mapper transforms a decoded Record into whatever shape the caller
// wants back from Next. The zero-value mapper chain yields the Record
// itself.
type Mapper func(r *record.Record) interface{}

// Item is what Cursor.Next yields for one matched frame.
type Item struct {
	StartPos int64
	Value    interface{}
	EndPos   int64
}

// Cursor is a resumable iterator over a Stream's on-disk frames. It
// never blocks mid-frame: if fewer than a full frame's bytes are visible
// at the current offset, Next parks on the stream's handle until a
// write extends it (or ctx is cancelled) and then re-peeks from
// scratch — spurious wakeups are harmless because the check is repeated.
type Cursor struct {
	stream  *Stream
	offset  int64
	filters []Predicate
	mappers []Mapper

	lastSchema *schema.Schema
	lastBody   []byte
}

func newCursor(s *Stream) *Cursor {
	return &Cursor{stream: s}
}

func newReplayCursor(s *Stream) *Cursor {
	return &Cursor{stream: s}
}

// NewCursorAt returns a Cursor resuming at position, the EndPos reported
// by a previous Cursor's last yielded Item.
func NewCursorAt(s *Stream, position int64) *Cursor {
	return &Cursor{stream: s, offset: position}
}

// Position reports the cursor's current byte offset into the stream.
func (c *Cursor) Position() int64 { return c.offset }

// Filter appends a predicate; a frame must pass every registered filter
// to be decoded and yielded. Returns the cursor for chaining.
func (c *Cursor) Filter(pred Predicate) *Cursor {
	c.filters = append(c.filters, pred)
	return c
}

// Map appends a transform applied, in registration order, to every
// matched Record before it is yielded. Returns the cursor for chaining.
func (c *Cursor) Map(fn Mapper) *Cursor {
	c.mappers = append(c.mappers, fn)
	return c
}

// Next blocks until a matching frame is available, ctx is cancelled, or
// a structural error is encountered (e.g. an unresolved schema id).
// ctx.Err() is returned verbatim on cancellation.
func (c *Cursor) Next(ctx context.Context) (Item, error) {
	for {
		item, ok, err := c.tryNext()
		if err != nil {
			return Item{}, err
		}
		if ok {
			return item, nil
		}
		if err := c.waitForMore(ctx); err != nil {
			return Item{}, err
		}
	}
}

// waitForMore parks until the handle reports new data or ctx is done.
func (c *Cursor) waitForMore(ctx context.Context) error {
	woke := make(chan struct{}, 1)
	var once sync.Once
	unsubscribe := c.stream.handle.Watch(func() {
		once.Do(func() { close(woke) })
	})
	defer unsubscribe()

	// A write may have landed between our last peek and the Watch
	// registration above; re-check immediately rather than only on
	// the next callback.
	size, err := c.stream.handle.Stat()
	if err != nil {
		return err
	}
	if size > c.offset {
		return nil
	}

	select {
	case <-woke:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// advance is the low-level, filter-less, non-blocking scan step used by
// Open's replay pass and CopyTo: it learns schemas and advances offset
// exactly like tryNext, but never applies Filter/Map and never blocks.
// ok=false with err=nil means the current offset does not yet hold a
// complete frame.
func (c *Cursor) advance() (bool, error) {
	sch, body, newOffset, ok, err := c.readFrame(c.offset)
	if err != nil || !ok {
		return ok, err
	}
	c.lastSchema = sch
	c.lastBody = body
	c.offset = newOffset
	return true, nil
}

// tryNext is advance plus Filter/Map: it skips non-matching frames in a
// loop and returns the first one that passes every filter, or ok=false
// if it runs off the end of currently visible data.
func (c *Cursor) tryNext() (Item, bool, error) {
	for {
		startPos := c.offset
		sch, body, newOffset, ok, err := c.readFrame(c.offset)
		if err != nil {
			return Item{}, false, err
		}
		if !ok {
			return Item{}, false, nil
		}
		c.offset = newOffset
		endPos := newOffset

		matched := true
		for _, pred := range c.filters {
			if !pred(sch, startPos, endPos) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		rec, err := record.New(sch, body)
		if err != nil {
			return Item{}, false, err
		}
		var value interface{} = rec
		for _, fn := range c.mappers {
			value = fn(rec)
		}
		c.lastSchema = sch
		c.lastBody = body
		return Item{StartPos: startPos, Value: value, EndPos: endPos}, true, nil
	}
}

// readFrame peeks and decodes exactly one frame at pos via the stream's
// block cache, returning the resolved schema, the record body slice, the
// offset just past the frame, and ok=false if pos does not yet hold a
// complete frame's worth of visible bytes.
func (c *Cursor) readFrame(pos int64) (*schema.Schema, []byte, int64, bool, error) {
	headerBytes, err := c.stream.cache.ReadAt(frameHeaderLen, pos)
	if err != nil {
		return nil, nil, 0, false, err
	}
	if len(headerBytes) < frameHeaderLen {
		return nil, nil, 0, false, nil
	}
	h := decodeFrameHeader(headerBytes)

	cursor := pos + frameHeaderLen
	sch, known := c.stream.registry.lookup(h.SchemaID)

	if h.SchemaLen > 0 {
		if !known {
			blob, err := c.stream.cache.ReadAt(int(h.SchemaLen), cursor)
			if err != nil {
				return nil, nil, 0, false, err
			}
			if len(blob) < int(h.SchemaLen) {
				return nil, nil, 0, false, nil
			}
			decoded, err := schema.DecodeCanonical(blob)
			if err != nil {
				return nil, nil, 0, false, ErrCorruption
			}
			c.stream.registry.learn(decoded)
			sch = decoded
			known = true
		}
		cursor += int64(h.SchemaLen)
	}

	if !known {
		return nil, nil, 0, false, ErrUnknownSchema
	}

	body, err := c.stream.cache.ReadAt(int(h.BodyLen), cursor)
	if err != nil {
		return nil, nil, 0, false, err
	}
	if len(body) < int(h.BodyLen) {
		return nil, nil, 0, false, nil
	}
	cursor += int64(h.BodyLen)

	return sch, body, cursor, true, nil
}
