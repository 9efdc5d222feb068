package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciabraguine/strelka/internal/somatic"
)

func newTestWriter() (*Writer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWriter(&buf, testConfig()), &buf
}

// dataLines returns the emitted non-header lines.
func dataLines(buf *bytes.Buffer) []string {
	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func TestWriter_CacheThenFlush(t *testing.T) {
	w, buf := newTestWriter()

	w.CacheIndel(100, refCandidate())
	assert.True(t, w.HasPending(100))
	assert.False(t, w.HasPending(101))

	require.NoError(t, w.FlushPosition(100, quietWindows(), quietWindows()))
	require.NoError(t, w.Flush())

	assert.False(t, w.HasPending(100), "position evicted after flush")
	assert.Equal(t, 0, w.PendingPositions())

	lines := dataLines(buf)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "chr1\t101\t"), "POS is 1-based: %s", lines[0])
}

func TestWriter_MultipleCandidatesOnePosition(t *testing.T) {
	w, buf := newTestWriter()

	// Overlapping alleles at one position are legitimate and must keep
	// insertion order through the flush.
	first := refCandidate()
	first.Indel.AltSeq = "CTT"
	second := refCandidate()
	second.Indel.AltSeq = "CG"

	w.CacheIndel(500, first)
	w.CacheIndel(500, second)

	require.NoError(t, w.FlushPosition(500, quietWindows(), quietWindows()))
	require.NoError(t, w.Flush())

	lines := dataLines(buf)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "\tCTT\t")
	assert.Contains(t, lines[1], "\tCG\t")
	assert.NotEqual(t, lines[0], lines[1])
	assert.False(t, w.HasPending(500))
}

func TestWriter_FlushWithoutPendingPanics(t *testing.T) {
	w, _ := newTestWriter()

	assert.Panics(t, func() {
		_ = w.FlushPosition(42, quietWindows(), quietWindows())
	})

	// Double flush of the same position is the same precondition violation.
	w.CacheIndel(42, refCandidate())
	require.NoError(t, w.FlushPosition(42, quietWindows(), quietWindows()))
	assert.Panics(t, func() {
		_ = w.FlushPosition(42, quietWindows(), quietWindows())
	})
}

func TestWriter_PositionsFlushIndependently(t *testing.T) {
	w, buf := newTestWriter()

	w.CacheIndel(10, refCandidate())
	w.CacheIndel(20, refCandidate())
	assert.Equal(t, 2, w.PendingPositions())

	require.NoError(t, w.FlushPosition(10, quietWindows(), quietWindows()))
	assert.False(t, w.HasPending(10))
	assert.True(t, w.HasPending(20))

	require.NoError(t, w.FlushPosition(20, quietWindows(), quietWindows()))
	require.NoError(t, w.Flush())

	require.Len(t, dataLines(buf), 2)
}

func TestWriter_WindowAveragesReachRecord(t *testing.T) {
	w, buf := newTestWriter()

	w.CacheIndel(0, refCandidate())
	wasNormal := somatic.WindowAverages{Used: 0.5, Filtered: 0.25, Submapped: 0.13}
	wasTumor := somatic.WindowAverages{Used: 0.4, Filtered: 0.1, Submapped: 0.2}

	require.NoError(t, w.FlushPosition(0, wasNormal, wasTumor))
	require.NoError(t, w.Flush())

	lines := dataLines(buf)
	require.Len(t, lines, 1)
	// Normal column DP50:FDP50:SUBDP50, tumor likewise.
	assert.Contains(t, lines[0], ":0.75:0.25:0.13:")
	assert.Contains(t, lines[0], ":0.50:0.10:0.20:")
}
