// Package somatic defines the value types for somatic indel calls: per-tier
// read-count evidence, streaming window averages, and the genotyped candidate
// that the output engine annotates and emits.
package somatic

// Evidence tiers. Tier1 applies the looser read-quality threshold, Tier2 the
// stricter one; both are reported side by side in every record.
const (
	Tier1 = 0
	Tier2 = 1

	// TierCount is the number of evidence tiers per sample.
	TierCount = 2
)

// ReadEvidence holds the read-count tally for one sample at one evidence tier.
// "High-confidence" counts (RefReads, AltReads, IndelReads and their strand
// sub-counts) only include reads passing the tier's quality threshold.
type ReadEvidence struct {
	// Depth is the total read depth at the call position.
	Depth int `json:"depth"`

	RefReads   int `json:"ref_reads"`
	AltReads   int `json:"alt_reads"`
	IndelReads int `json:"indel_reads"`

	// OtherReads counts reads supporting neither the reference nor the
	// indel allele.
	OtherReads int `json:"other_reads"`

	RefReadsFwd   int `json:"ref_reads_fwd"`
	RefReadsRev   int `json:"ref_reads_rev"`
	IndelReadsFwd int `json:"indel_reads_fwd"`
	IndelReadsRev int `json:"indel_reads_rev"`

	// RankSum is the Mann-Whitney U statistic of the read-position
	// rank-sum test.
	RankSum float64 `json:"rank_sum"`

	// MeanMapQ is the mean mapping quality of reads at the position.
	MeanMapQ float64 `json:"mean_mapq"`

	// ZeroMapQFrac is the fraction of reads with mapping quality zero.
	ZeroMapQFrac float64 `json:"zero_mapq_frac"`
}

// WindowAverages holds the streaming basecall averages computed over a
// trailing window around the call position. They are produced by an external
// collaborator and become available only after the caller finishes the
// window, which is why candidates are buffered until flush.
type WindowAverages struct {
	// Used is the average fraction of basecalls used by the caller.
	Used float64 `json:"used"`

	// Filtered is the average fraction of basecalls filtered out.
	Filtered float64 `json:"filtered"`

	// Submapped is the average fraction of basecalls from reads with
	// ambiguous mapping locations.
	Submapped float64 `json:"submapped"`
}
