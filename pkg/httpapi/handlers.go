package httpapi

import (
	"net/http"

	"github.com/idleman/staabler/pkg/logstream"
)

// Server holds the handlers' dependencies: the stream they report on and
// the metrics they're instrumented with.
type Server struct {
	stream  *logstream.Stream
	report  *logstream.RecoveryReport
	metrics *Metrics
}

// NewServer returns a Server reporting on stream, whose report is the
// RecoveryReport Open produced when the stream was opened.
func NewServer(stream *logstream.Stream, report *logstream.RecoveryReport, metrics *Metrics) *Server {
	return &Server{stream: stream, report: report, metrics: metrics}
}

// handleHealth reports liveness: the process is up and the stream handle
// is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "ok"})
}

// handleStats reports the stream's current on-disk footprint, mirroring
// spec's Stream.Stats().
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	size, frames := s.stream.Stats()
	s.metrics.UpdateStreamStats(size, s.report.FramesValidated)
	sendSuccess(w, map[string]interface{}{
		"size_bytes": size,
		"frames":     frames,
	})
}

// handleExplain dumps the diagnostic state captured at Open time plus the
// most recent writeManySync batches, so an operator can correlate a live
// incident with the on-disk frame range it touched.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	batches := s.stream.RecentBatches()
	recent := make([]map[string]interface{}, len(batches))
	for i, b := range batches {
		recent[i] = map[string]interface{}{
			"id":           b.ID.String(),
			"start_offset": b.StartOffset,
			"end_offset":   b.EndOffset,
			"frames":       b.Frames,
		}
	}

	sendSuccess(w, map[string]interface{}{
		"frames_validated": s.report.FramesValidated,
		"frames_truncated": s.report.FramesTruncated,
		"file_size_before": s.report.FileSizeBefore,
		"file_size_after":  s.report.FileSizeAfter,
		"recovery_time_ms": s.report.RecoveryTime.Milliseconds(),
		"recent_batches":   recent,
	})
}
