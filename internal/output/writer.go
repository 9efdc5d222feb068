package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/patriciabraguine/strelka/internal/config"
	"github.com/patriciabraguine/strelka/internal/somatic"
)

// Writer emits somatic indel candidates as VCF records. Candidates are
// buffered per genomic position until the trailing-window averages for that
// position arrive, then rendered in insertion order and evicted.
//
// Writer is not safe for concurrent use; the upstream pipeline delivers
// cache and flush calls sequentially, and all CacheIndel calls for a
// position precede its FlushPosition call.
type Writer struct {
	w       *bufio.Writer
	cfg     config.Config
	pending map[int64][]*somatic.Candidate
	logger  *zap.Logger
}

// NewWriter creates a writer emitting to w with the given configuration.
func NewWriter(w io.Writer, cfg config.Config) *Writer {
	return &Writer{
		w:       bufio.NewWriter(w),
		cfg:     cfg,
		pending: make(map[int64][]*somatic.Candidate),
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and info messages.
func (w *Writer) SetLogger(l *zap.Logger) {
	w.logger = l
}

// CacheIndel buffers a candidate at a 0-based genomic position. Multiple
// candidates at one position are legitimate (overlapping alleles) and are
// kept in insertion order.
func (w *Writer) CacheIndel(pos int64, c *somatic.Candidate) {
	w.pending[pos] = append(w.pending[pos], c)
}

// HasPending reports whether any candidate is buffered at pos.
func (w *Writer) HasPending(pos int64) bool {
	_, ok := w.pending[pos]
	return ok
}

// PendingPositions returns the number of positions with buffered candidates.
func (w *Writer) PendingPositions() int {
	return len(w.pending)
}

// FlushPosition renders every candidate buffered at pos, in insertion
// order, using the supplied trailing-window averages, then evicts the
// position. A position flushes exactly once and never partially.
//
// Flushing a position with nothing pending panics: it means the window
// collaborator and the buffer have lost synchronization, which is a
// programmer error, not a runtime condition.
func (w *Writer) FlushPosition(pos int64, wasNormal, wasTumor somatic.WindowAverages) error {
	candidates, ok := w.pending[pos]
	if !ok {
		panic(fmt.Sprintf("output: flush of position %d with no pending candidates", pos))
	}

	var b strings.Builder
	b.Grow(512)
	for _, c := range candidates {
		b.Reset()
		writeRecord(&b, pos, c, wasNormal, wasTumor, &w.cfg)
		if _, err := w.w.WriteString(b.String()); err != nil {
			return fmt.Errorf("write indel record at position %d: %w", pos, err)
		}
	}

	w.logger.Debug("flushed position",
		zap.Int64("pos", pos),
		zap.Int("candidates", len(candidates)))

	delete(w.pending, pos)
	return nil
}

// Flush flushes the underlying buffered writer. It does not touch pending
// positions; those are released only by FlushPosition.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
