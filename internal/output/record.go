package output

import (
	"strconv"
	"strings"

	"github.com/patriciabraguine/strelka/internal/config"
	"github.com/patriciabraguine/strelka/internal/somatic"
	"github.com/patriciabraguine/strelka/internal/stats"
)

// sampleFormat names the per-sample column fields, colon-separated in field
// order: per-tier depths, ref+alt/indel/other counts, the three window
// averages, then the per-tier derived statistics.
const sampleFormat = "DP:DP2:TAR:TIR:TOR:DP50:FDP50:SUBDP50:AF:SOR:FS:RR:MQ:MQ0"

// formatWindow renders a window-derived value at fixed two-decimal
// precision. All window fields go through here so compatibility tests can
// pin exact strings in one place.
func formatWindow(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatStat renders a derived statistic with Go's default shortest
// representation. Infinities stay literal ("+Inf").
func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeTierStats appends the comma-joined per-tier values of one derived
// statistic.
func writeTierStats(b *strings.Builder, evs *[somatic.TierCount]somatic.ReadEvidence, stat func(somatic.ReadEvidence) float64) {
	for tier, ev := range evs {
		if tier > 0 {
			b.WriteByte(',')
		}
		b.WriteString(formatStat(stat(ev)))
	}
}

// writeTierCounts appends the comma-joined per-tier values of one read
// count.
func writeTierCounts(b *strings.Builder, evs *[somatic.TierCount]somatic.ReadEvidence, count func(somatic.ReadEvidence) int) {
	for tier, ev := range evs {
		if tier > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(count(ev)))
	}
}

// writeSampleColumn appends one sample's column: tiered counts, window
// averages, and derived statistics, colon-separated per sampleFormat.
func writeSampleColumn(b *strings.Builder, evs *[somatic.TierCount]somatic.ReadEvidence, was somatic.WindowAverages) {
	b.WriteString(strconv.Itoa(evs[somatic.Tier1].Depth))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(evs[somatic.Tier2].Depth))
	b.WriteByte(':')
	writeTierCounts(b, evs, func(ev somatic.ReadEvidence) int { return ev.RefReads + ev.AltReads })
	b.WriteByte(':')
	writeTierCounts(b, evs, func(ev somatic.ReadEvidence) int { return ev.IndelReads })
	b.WriteByte(':')
	writeTierCounts(b, evs, func(ev somatic.ReadEvidence) int { return ev.OtherReads })

	b.WriteByte(':')
	b.WriteString(formatWindow(was.Used + was.Filtered))
	b.WriteByte(':')
	b.WriteString(formatWindow(was.Filtered))
	b.WriteByte(':')
	b.WriteString(formatWindow(was.Submapped))

	b.WriteByte(':')
	writeTierStats(b, evs, stats.AlleleFraction)
	b.WriteByte(':')
	writeTierStats(b, evs, stats.StrandOddsRatio)
	b.WriteByte(':')
	writeTierStats(b, evs, stats.StrandBiasPhred)
	b.WriteByte(':')
	writeTierStats(b, evs, func(ev somatic.ReadEvidence) float64 { return ev.RankSum })
	b.WriteByte(':')
	writeTierStats(b, evs, func(ev somatic.ReadEvidence) float64 { return ev.MeanMapQ })
	b.WriteByte(':')
	writeTierStats(b, evs, func(ev somatic.ReadEvidence) float64 { return ev.ZeroMapQFrac })
}

// writeInfoColumn appends the semicolon-delimited INFO block.
func writeInfoColumn(b *strings.Builder, c *somatic.Candidate) {
	rs := &c.Result

	b.WriteString("SOMATIC")
	b.WriteString(";QSI=")
	b.WriteString(strconv.Itoa(rs.QualityPhred))
	b.WriteString(";TQSI=")
	b.WriteString(strconv.Itoa(rs.QualityTier + 1))
	b.WriteString(";NT=")
	b.WriteString(rs.NormalGenotype.Label())
	b.WriteString(";QSI_NT=")
	b.WriteString(strconv.Itoa(rs.FromNTPhred))
	b.WriteString(";TQSI_NT=")
	b.WriteString(strconv.Itoa(rs.FromNTTier + 1))
	b.WriteString(";SGT=")
	b.WriteString(strconv.Itoa(rs.MaxGenotypeIndex))

	if c.Indel.HasRepeatUnit() {
		b.WriteString(";RU=")
		b.WriteString(c.Indel.RepeatUnit)
		b.WriteString(";RC=")
		b.WriteString(strconv.Itoa(c.Indel.RefRepeatCount))
		b.WriteString(";IC=")
		b.WriteString(strconv.Itoa(c.Indel.IndelRepeatCount))
	}

	b.WriteString(";IHP=")
	b.WriteString(strconv.Itoa(c.Indel.HomopolymerLength))

	if c.Indel.Type.IsBreakpoint() {
		b.WriteString(";SVTYPE=BND")
	}
	if rs.IsOverlap {
		b.WriteString(";OVERLAP")
	}
}

// writeRecord renders one candidate as a complete VCF data line, newline
// included. pos is the 0-based buffer position; the POS column is 1-based.
func writeRecord(b *strings.Builder, pos int64, c *somatic.Candidate, wasNormal, wasTumor somatic.WindowAverages, cfg *config.Config) {
	flags := EvaluateFilters(c, wasNormal, wasTumor, cfg.Filters)

	b.WriteString(cfg.Contig)
	b.WriteByte('\t')
	b.WriteString(strconv.FormatInt(pos+1, 10))
	b.WriteString("\t.\t")
	b.WriteString(c.Indel.RefSeq)
	b.WriteByte('\t')
	b.WriteString(c.Indel.AltSeq)
	b.WriteString("\t.\t")
	b.WriteString(flags.String())
	b.WriteByte('\t')

	writeInfoColumn(b, c)

	b.WriteByte('\t')
	b.WriteString(sampleFormat)

	b.WriteByte('\t')
	writeSampleColumn(b, &c.Normal, wasNormal)
	b.WriteByte('\t')
	writeSampleColumn(b, &c.Tumor, wasTumor)

	b.WriteByte('\n')
}
