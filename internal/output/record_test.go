package output

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciabraguine/strelka/internal/config"
	"github.com/patriciabraguine/strelka/internal/somatic"
)

// testConfig returns the default configuration with a contig set.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Contig = "chr1"
	return cfg
}

// renderRecord renders one candidate to a string for inspection.
func renderRecord(pos int64, c *somatic.Candidate, wasNormal, wasTumor somatic.WindowAverages, cfg config.Config) string {
	var b strings.Builder
	writeRecord(&b, pos, c, wasNormal, wasTumor, &cfg)
	return b.String()
}

func TestWriteRecord_ExactLine(t *testing.T) {
	c := &somatic.Candidate{
		Indel: somatic.IndelDescriptor{
			RefSeq:            "CA",
			AltSeq:            "C",
			RepeatUnit:        "A",
			RefRepeatCount:    3,
			IndelRepeatCount:  2,
			HomopolymerLength: 4,
			Type:              somatic.IndelDelete,
		},
		Result: somatic.CallResult{
			QualityPhred:     30,
			QualityTier:      0,
			FromNTPhred:      30,
			FromNTTier:       0,
			NormalGenotype:   somatic.NTRef,
			MaxGenotypeIndex: 5,
		},
	}
	c.Normal[somatic.Tier1] = somatic.ReadEvidence{
		Depth: 40, RefReads: 30, OtherReads: 2,
		RefReadsFwd: 15, RefReadsRev: 15,
		RankSum: 0.5, MeanMapQ: 60,
	}
	c.Normal[somatic.Tier2] = somatic.ReadEvidence{
		Depth: 42, RefReads: 31, OtherReads: 2,
		RefReadsFwd: 16, RefReadsRev: 15,
		RankSum: 0.5, MeanMapQ: 60,
	}
	tumorTier := somatic.ReadEvidence{
		Depth: 50, RefReads: 20, IndelReads: 10, OtherReads: 3,
		RefReadsFwd: 10, RefReadsRev: 10,
		IndelReadsFwd: 5, IndelReadsRev: 5,
		RankSum: 1.2, MeanMapQ: 58.5, ZeroMapQFrac: 0.05,
	}
	c.Tumor[somatic.Tier1] = tumorTier
	tumorTier.Depth = 52
	c.Tumor[somatic.Tier2] = tumorTier

	wasNormal := somatic.WindowAverages{Used: 0.9, Filtered: 0.05, Submapped: 0.01}
	wasTumor := somatic.WindowAverages{Used: 0.8, Filtered: 0.1, Submapped: 0.02}

	got := renderRecord(999, c, wasNormal, wasTumor, testConfig())

	want := "chr1\t1000\t.\tCA\tC\t.\tPASS\t" +
		"SOMATIC;QSI=30;TQSI=1;NT=ref;QSI_NT=30;TQSI_NT=1;SGT=5;RU=A;RC=3;IC=2;IHP=4\t" +
		"DP:DP2:TAR:TIR:TOR:DP50:FDP50:SUBDP50:AF:SOR:FS:RR:MQ:MQ0\t" +
		"40:42:30,31:0,0:2,2:0.95:0.05:0.01:0,0:+Inf,+Inf:0,0:0.5,0.5:60,60:0,0\t" +
		"50:52:20,20:10,10:3,3:0.90:0.10:0.02:" +
		"0.3333333333333333,0.3333333333333333:0,0:0,0:1.2,1.2:58.5,58.5:0.05,0.05\n"

	assert.Equal(t, want, got)
}

func TestWriteRecord_RepeatUnitOmittedWhenAbsent(t *testing.T) {
	c := refCandidate()
	require.False(t, c.Indel.HasRepeatUnit())

	line := renderRecord(10, c, quietWindows(), quietWindows(), testConfig())
	assert.NotContains(t, line, "RU=")
	assert.NotContains(t, line, ";RC=")
	assert.NotContains(t, line, ";IC=")
	assert.Contains(t, line, ";IHP=3")
}

func TestWriteRecord_BreakpointAndOverlapMarkers(t *testing.T) {
	c := refCandidate()
	c.Indel.Type = somatic.IndelBreakpointLeft
	c.Result.IsOverlap = true

	line := renderRecord(10, c, quietWindows(), quietWindows(), testConfig())
	assert.Contains(t, line, ";SVTYPE=BND")
	assert.Contains(t, line, ";OVERLAP")

	c.Indel.Type = somatic.IndelBreakpointRight
	line = renderRecord(10, c, quietWindows(), quietWindows(), testConfig())
	assert.Contains(t, line, ";SVTYPE=BND")

	c.Indel.Type = somatic.IndelInsert
	c.Result.IsOverlap = false
	line = renderRecord(10, c, quietWindows(), quietWindows(), testConfig())
	assert.NotContains(t, line, "SVTYPE")
	assert.NotContains(t, line, "OVERLAP")
}

func TestWriteRecord_NonRefGenotypeAlwaysFiltered(t *testing.T) {
	for _, nt := range []somatic.NormalGenotype{somatic.NTHet, somatic.NTHom, somatic.NTConflict} {
		c := refCandidate()
		c.Result.NormalGenotype = nt
		c.Result.FromNTPhred = 200 // quality alone cannot rescue the call

		line := renderRecord(10, c, quietWindows(), quietWindows(), testConfig())
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 11)
		assert.Contains(t, fields[6], "QSI_ref", "NT=%s", nt.Label())
		assert.Contains(t, fields[7], "NT="+nt.Label())
	}
}

func TestWriteRecord_TierIndicesAreOneBased(t *testing.T) {
	c := refCandidate()
	c.Result.QualityTier = 1
	c.Result.FromNTTier = 0

	line := renderRecord(10, c, quietWindows(), quietWindows(), testConfig())
	assert.Contains(t, line, ";TQSI=2;")
	assert.Contains(t, line, ";TQSI_NT=1;")
}

func TestFormatWindow(t *testing.T) {
	assert.Equal(t, "0.00", formatWindow(0))
	assert.Equal(t, "0.90", formatWindow(0.9))
	assert.Equal(t, "0.95", formatWindow(0.95))
	assert.Equal(t, "1.00", formatWindow(0.999))
	assert.Equal(t, "12.35", formatWindow(12.346))
}

func TestFormatStat(t *testing.T) {
	assert.Equal(t, "0", formatStat(0))
	assert.Equal(t, "0.5", formatStat(0.5))
	assert.Equal(t, "60", formatStat(60))
	assert.Equal(t, "+Inf", formatStat(math.Inf(1)))
}
