package logstream

import (
	"testing"

	"github.com/idleman/staabler/pkg/schema"
)

func TestKeyedIndexProjectionTracksLatestSpanPerKeyOnReplay(t *testing.T) {
	sch := mustSchema(t, "account", []schema.FieldDescriptor{
		{Name: "id", Kind: kindInt32},
		{Name: "balance", Kind: kindInt32},
	})

	h := NewMemHandle()
	s, _, err := Open(h)
	if err != nil {
		t.Fatal(err)
	}
	var wrote []int64
	for _, rec := range []map[string]int32{
		{"id": 1, "balance": 10},
		{"id": 2, "balance": 20},
		{"id": 1, "balance": 30}, // overwrite id 1
	} {
		off, err := s.WriteOne(mustRecord(t, sch, rec))
		if err != nil {
			t.Fatal(err)
		}
		wrote = append(wrote, off)
	}

	proj := NewKeyedIndexProjection(sch, "id")
	reopened, _, err := Open(h, proj)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	start, _, ok := proj.Lookup("1")
	if !ok {
		t.Fatal("expected key \"1\" to be indexed")
	}
	if start != wrote[2] {
		t.Fatalf("id 1 span start = %d, want %d (the overwriting frame)", start, wrote[2])
	}

	if _, _, ok := proj.Lookup("3"); ok {
		t.Fatal("key \"3\" was never written, Lookup should report ok=false")
	}
}
