// Package stats provides the statistical annotations computed for somatic
// indel candidates: allele fraction, strand odds ratio, and the Fisher exact
// strand-bias phred score. All functions are pure and total; degenerate
// inputs yield defined values, never errors.
package stats

import (
	"math"

	"github.com/patriciabraguine/strelka/internal/somatic"
)

// minPValue is the floor applied to p-values before phred conversion, so
// ErrorProbToPhred stays finite for vanishingly small probabilities. It is
// a normal float64, keeping the phred ceiling (3000) independent of
// platform subnormal handling.
const minPValue = 1e-300

// safeFrac returns num/denom, or 0 when denom is not positive.
func safeFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

// AlleleFraction approximates the indel allele fraction from high-confidence
// reads: indel / (ref + alt + indel). Returns 0 when no high-confidence reads
// are present.
func AlleleFraction(ev somatic.ReadEvidence) float64 {
	return safeFrac(ev.IndelReads, ev.RefReads+ev.AltReads+ev.IndelReads)
}

// StrandOddsRatio returns log10((refFwd*indelRev)/(refRev*indelFwd)) computed
// from high-confidence read counts. A zero denominator product signals
// maximal strand skew and yields +Inf. The cross-products are taken in
// float64 so large counts cannot overflow.
func StrandOddsRatio(ev somatic.ReadEvidence) float64 {
	num := float64(ev.RefReadsFwd) * float64(ev.IndelReadsRev)
	denom := float64(ev.RefReadsRev) * float64(ev.IndelReadsFwd)
	if denom == 0 {
		return math.Inf(1)
	}
	return math.Log10(num / denom)
}

// StrandBiasPhred runs a two-sided Fisher exact test on the strand
// contingency table [[refFwd, indelFwd], [refRev, indelRev]] and returns the
// p-value as a phred score. Higher means more evidence of strand bias.
func StrandBiasPhred(ev somatic.ReadEvidence) float64 {
	p := FisherExact2x2(ev.RefReadsFwd, ev.IndelReadsFwd, ev.RefReadsRev, ev.IndelReadsRev)
	return ErrorProbToPhred(p)
}

// ErrorProbToPhred converts an error probability to the phred scale,
// -10*log10(p). Probabilities at or below the floor are clamped, so the
// result is always finite; probabilities at or above 1 return exactly 0
// (never IEEE negative zero, which would leak into rendered records).
func ErrorProbToPhred(p float64) float64 {
	if p >= 1 {
		return 0
	}
	if p < minPValue {
		p = minPValue
	}
	return -10 * math.Log10(p)
}
