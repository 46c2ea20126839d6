package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/idleman/staabler/pkg/logstream"
	"github.com/idleman/staabler/pkg/prim"
	"github.com/idleman/staabler/pkg/record"
	"github.com/idleman/staabler/pkg/schema"
)

// entrySchema describes the one record shape the CLI writes: a string
// key, an opaque value, and the wall-clock time it was put. Real
// deployments are expected to define their own schemas through the
// library directly; the CLI only needs one to be useful as a quickstart
// and a smoke test for the stream.
var entrySchema = mustEntrySchema()

func mustEntrySchema() *schema.Schema {
	s, err := schema.Intern("entry", []schema.FieldDescriptor{
		{Name: "key", Kind: prim.Utf8},
		{Name: "value", Kind: prim.Bytes},
		{Name: "written_at", Kind: prim.BigInt64},
	})
	if err != nil {
		panic(err)
	}
	return s
}

func newEntry(key string, value []byte) (*record.Record, error) {
	r, err := record.New(entrySchema, nil)
	if err != nil {
		return nil, err
	}
	if err := r.SetUtf8("key", key); err != nil {
		return nil, err
	}
	if err := r.SetBytes("value", value); err != nil {
		return nil, err
	}
	if err := r.SetBigInt64("written_at", time.Now().UnixNano()); err != nil {
		return nil, err
	}
	return r, nil
}

func streamFromContext(ctx context.Context) (*logstream.Stream, error) {
	stream, ok := ctx.Value(streamCtxKey{}).(*logstream.Stream)
	if !ok {
		return nil, fmt.Errorf("stream not found in command context")
	}
	return stream, nil
}

func reportFromContext(ctx context.Context) (*logstream.RecoveryReport, error) {
	report, ok := ctx.Value(reportCtxKey{}).(*logstream.RecoveryReport)
	if !ok {
		return nil, fmt.Errorf("recovery report not found in command context")
	}
	return report, nil
}
