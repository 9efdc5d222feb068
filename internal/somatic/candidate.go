package somatic

import (
	"encoding/json"
	"fmt"
)

// NormalGenotype classifies the inferred genotype of the normal sample,
// used as the baseline for somatic calling.
type NormalGenotype uint8

// Normal-sample genotype classifications.
const (
	NTRef NormalGenotype = iota
	NTHet
	NTHom
	NTConflict
)

var normalGenotypeLabels = [...]string{"ref", "het", "hom", "conflict"}

// Label returns the genotype label used in the NT output field.
func (g NormalGenotype) Label() string {
	if int(g) >= len(normalGenotypeLabels) {
		return "conflict"
	}
	return normalGenotypeLabels[g]
}

// MarshalJSON renders the genotype as its label.
func (g NormalGenotype) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Label())
}

// UnmarshalJSON parses a genotype label.
func (g *NormalGenotype) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, label := range normalGenotypeLabels {
		if s == label {
			*g = NormalGenotype(i)
			return nil
		}
	}
	return fmt.Errorf("unknown normal genotype %q", s)
}

// IndelType distinguishes ordinary insertions and deletions from one-sided
// structural breakpoints (breakends).
type IndelType uint8

// Indel types.
const (
	IndelInsert IndelType = iota
	IndelDelete
	IndelBreakpointLeft
	IndelBreakpointRight
)

var indelTypeLabels = [...]string{"insert", "delete", "bp_left", "bp_right"}

// IsBreakpoint reports whether the indel is a left or right breakend.
func (t IndelType) IsBreakpoint() bool {
	return t == IndelBreakpointLeft || t == IndelBreakpointRight
}

// MarshalJSON renders the indel type as its label.
func (t IndelType) MarshalJSON() ([]byte, error) {
	if int(t) >= len(indelTypeLabels) {
		return nil, fmt.Errorf("invalid indel type %d", t)
	}
	return json.Marshal(indelTypeLabels[t])
}

// UnmarshalJSON parses an indel type label.
func (t *IndelType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, label := range indelTypeLabels {
		if s == label {
			*t = IndelType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown indel type %q", s)
}

// IndelDescriptor describes the indel allele itself: its output sequence
// representations and sequence-context metadata.
type IndelDescriptor struct {
	// RefSeq and AltSeq are the VCF REF and ALT allele sequences.
	RefSeq string `json:"ref_seq"`
	AltSeq string `json:"alt_seq"`

	// RepeatUnit is set only for indels that are tandem-repeat expansions
	// or contractions; an empty unit means no repeat metadata.
	RepeatUnit       string `json:"repeat_unit,omitempty"`
	RefRepeatCount   int    `json:"ref_repeat_count,omitempty"`
	IndelRepeatCount int    `json:"indel_repeat_count,omitempty"`

	// HomopolymerLength is the length of the interrupted homopolymer
	// context at the call position.
	HomopolymerLength int `json:"homopolymer_length"`

	Type IndelType `json:"type"`
}

// HasRepeatUnit reports whether repeat-unit metadata is present.
func (d *IndelDescriptor) HasRepeatUnit() bool {
	return d.RepeatUnit != ""
}

// CallResult holds the genotyper's quality results for one candidate.
type CallResult struct {
	// QualityPhred is QSI, the phred-scaled somatic quality score.
	QualityPhred int `json:"quality_phred"`

	// QualityTier is the 0-based evidence tier that produced QualityPhred.
	QualityTier int `json:"quality_tier"`

	// FromNTPhred is QSI_NT, the somatic quality relative to the inferred
	// normal genotype.
	FromNTPhred int `json:"from_nt_phred"`

	// FromNTTier is the 0-based evidence tier that produced FromNTPhred.
	FromNTTier int `json:"from_nt_tier"`

	NormalGenotype NormalGenotype `json:"normal_genotype"`

	// MaxGenotypeIndex is the index of the most likely joint tumor/normal
	// genotype in the genotyper's grid.
	MaxGenotypeIndex int `json:"max_genotype_index"`

	// IsOverlap marks a call overlapping another call.
	IsOverlap bool `json:"is_overlap,omitempty"`
}

// Candidate is one genotyped somatic indel call pending annotation and
// output. It is created once by the upstream genotyper, is immutable after
// creation, and is consumed exactly once by the record formatter.
type Candidate struct {
	Indel  IndelDescriptor `json:"indel"`
	Result CallResult      `json:"result"`

	// Normal and Tumor hold the read-count evidence per tier.
	Normal [TierCount]ReadEvidence `json:"normal"`
	Tumor  [TierCount]ReadEvidence `json:"tumor"`
}
