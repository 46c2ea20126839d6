package logstream

import (
	"context"
	"testing"
	"time"

	"github.com/idleman/staabler/pkg/record"
	"github.com/idleman/staabler/pkg/schema"
)

func drainN(t *testing.T, c *Cursor, n int) []Item {
	t.Helper()
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		item, err := c.Next(ctx)
		cancel()
		if err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
		items = append(items, item)
	}
	return items
}

func TestCursorResumesFromSavedPosition(t *testing.T) {
	sch := mustSchema(t, "tick", []schema.FieldDescriptor{{Name: "seq", Kind: kindInt32}})
	h := NewMemHandle()
	s, _, err := Open(h)
	if err != nil {
		t.Fatal(err)
	}

	for i := int32(0); i < 3; i++ {
		if _, err := s.WriteOne(mustRecord(t, sch, map[string]int32{"seq": i})); err != nil {
			t.Fatal(err)
		}
	}

	c := s.NewCursor()
	first := drainN(t, c, 3)
	for i, it := range first {
		rec := it.Value.(*record.Record)
		seq, _ := rec.GetInt32("seq")
		if seq != int32(i) {
			t.Fatalf("first batch[%d].seq = %d, want %d", i, seq, i)
		}
	}
	savedPos := first[len(first)-1].EndPos

	for i := int32(3); i < 6; i++ {
		if _, err := s.WriteOne(mustRecord(t, sch, map[string]int32{"seq": i})); err != nil {
			t.Fatal(err)
		}
	}

	resumed := NewCursorAt(s, savedPos)
	second := drainN(t, resumed, 3)
	for i, it := range second {
		rec := it.Value.(*record.Record)
		seq, _ := rec.GetInt32("seq")
		want := int32(3 + i)
		if seq != want {
			t.Fatalf("resumed batch[%d].seq = %d, want %d", i, seq, want)
		}
	}
}

func TestCursorFilterSkipsNonMatchingSchemas(t *testing.T) {
	reset := mustSchema(t, "filter-reset", []schema.FieldDescriptor{{Name: "id", Kind: kindInt32}})
	transfer := mustSchema(t, "filter-transfer", []schema.FieldDescriptor{{Name: "amount", Kind: kindInt32}})

	h := NewMemHandle()
	s, _, err := Open(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.WriteOne(mustRecord(t, reset, map[string]int32{"id": 1})); err != nil {
		t.Fatal(err)
	}
	if _, err := s.WriteOne(mustRecord(t, transfer, map[string]int32{"amount": 7})); err != nil {
		t.Fatal(err)
	}
	if _, err := s.WriteOne(mustRecord(t, reset, map[string]int32{"id": 2})); err != nil {
		t.Fatal(err)
	}

	c := s.NewCursor().Filter(func(sch *schema.Schema, startPos, endPos int64) bool {
		return sch.Equal(reset)
	})
	items := drainN(t, c, 2)
	for i, it := range items {
		rec := it.Value.(*record.Record)
		id, _ := rec.GetInt32("id")
		want := int32(i + 1)
		if id != want {
			t.Fatalf("items[%d].id = %d, want %d", i, id, want)
		}
	}
}

func TestCursorNextBlocksUntilWriteThenCancels(t *testing.T) {
	_ = mustSchema(t, "blocker", []schema.FieldDescriptor{{Name: "id", Kind: kindInt32}})
	h := NewMemHandle()
	s, _, err := Open(h)
	if err != nil {
		t.Fatal(err)
	}

	c := s.NewCursor()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Next(ctx); err == nil {
		t.Fatal("expected Next to block and then return ctx.Err on an empty stream")
	}
}
