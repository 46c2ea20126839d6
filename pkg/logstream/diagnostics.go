package logstream

import (
	"sync"

	"github.com/segmentio/ksuid"
)

// recentBatchCap bounds the in-memory diagnostics ring so long-running
// streams don't grow it unbounded; only the most recent writes matter for
// correlating a live incident with on-disk frame ranges.
const recentBatchCap = 32

// BatchDiagnostic records one writeManySync call: its k-sortable id (so
// diagnostics naturally sort by write order even across process restarts)
// and the byte span it landed at.
type BatchDiagnostic struct {
	ID          ksuid.KSUID
	StartOffset int64
	EndOffset   int64
	Frames      int
}

type batchDiagnostics struct {
	mu    sync.Mutex
	ring  [recentBatchCap]BatchDiagnostic
	count int
	next  int
}

func (d *batchDiagnostics) record(startOffset, endOffset int64, frames int) BatchDiagnostic {
	d.mu.Lock()
	id := ksuid.New()
	if d.count > 0 {
		// ksuids minted within the same second order by their random
		// payload; step past the previous id so ids follow write order.
		prev := d.ring[(d.next-1+recentBatchCap)%recentBatchCap].ID
		if ksuid.Compare(id, prev) <= 0 {
			id = prev.Next()
		}
	}
	bd := BatchDiagnostic{
		ID:          id,
		StartOffset: startOffset,
		EndOffset:   endOffset,
		Frames:      frames,
	}
	d.ring[d.next] = bd
	d.next = (d.next + 1) % recentBatchCap
	if d.count < recentBatchCap {
		d.count++
	}
	d.mu.Unlock()
	return bd
}

// recent returns the recorded batches, oldest first.
func (d *batchDiagnostics) recent() []BatchDiagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]BatchDiagnostic, d.count)
	start := (d.next - d.count + recentBatchCap) % recentBatchCap
	for i := 0; i < d.count; i++ {
		out[i] = d.ring[(start+i)%recentBatchCap]
	}
	return out
}

// RecentBatches returns the most recent writeManySync calls' diagnostics,
// oldest first, for the HTTP control plane's /explain surface.
func (s *Stream) RecentBatches() []BatchDiagnostic {
	return s.batches.recent()
}
