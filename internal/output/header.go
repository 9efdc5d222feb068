package output

import (
	"fmt"
	"strings"
)

// infoLine describes one ##INFO meta line.
type infoLine struct {
	ID          string
	Number      string
	Type        string
	Description string
}

// formatLine describes one ##FORMAT meta line.
type formatLine struct {
	ID          string
	Number      string
	Type        string
	Description string
}

var infoLines = []infoLine{
	{"QSI", "1", "Integer", "Quality score for any somatic variant, ie. for the ALT haplotype to be present at a significantly different frequency in the tumor and normal"},
	{"TQSI", "1", "Integer", "Data tier used to compute QSI"},
	{"NT", "1", "String", "Genotype of the normal in all data tiers, as used to classify somatic variants. One of {ref,het,hom,conflict}."},
	{"QSI_NT", "1", "Integer", "Quality score reflecting the joint probability of a somatic variant and NT"},
	{"TQSI_NT", "1", "Integer", "Data tier used to compute QSI_NT"},
	{"SGT", "1", "String", "Most likely somatic genotype excluding normal noise states"},
	{"RU", "1", "String", "Smallest repeating sequence unit in inserted or deleted sequence"},
	{"RC", "1", "Integer", "Number of times RU repeats in the reference allele"},
	{"IC", "1", "Integer", "Number of times RU repeats in the indel allele"},
	{"IHP", "1", "Integer", "Largest reference interrupted homopolymer length intersecting with the indel"},
	{"SVTYPE", "1", "String", "Type of structural variant"},
	{"SOMATIC", "0", "Flag", "Somatic mutation"},
	{"OVERLAP", "0", "Flag", "Somatic indel possibly overlaps a second indel"},
}

var formatLines = []formatLine{
	{"DP", "1", "Integer", "Tier1 Read depth at this locus"},
	{"DP2", "1", "Integer", "Tier2 Read depth at this locus"},
	{"TAR", "2", "Integer", "Reads strongly supporting alternate allele for tiers 1,2"},
	{"TIR", "2", "Integer", "Reads strongly supporting indel allele for tiers 1,2"},
	{"TOR", "2", "Integer", "Other reads (weak support or insufficient indel breakpoint overlap) for tiers 1,2"},
	{"DP50", "1", "Float", "Average tier1 read depth within 50 bases"},
	{"FDP50", "1", "Float", "Average tier1 number of basecalls filtered from original read depth within 50 bases"},
	{"SUBDP50", "1", "Float", "Average number of reads below tier1 mapping quality threshold aligned across sites within 50 bases"},
	{"AF", "2", "Float", "Indel allele fraction from strongly supporting reads for tiers 1,2"},
	{"SOR", "2", "Float", "Strand odds ratio of reference vs indel supporting reads for tiers 1,2"},
	{"FS", "2", "Float", "Phred-scaled Fisher exact strand bias of reference vs indel supporting reads for tiers 1,2"},
	{"RR", "2", "Float", "Read position rank-sum statistic for tiers 1,2"},
	{"MQ", "2", "Float", "Mean read mapping quality for tiers 1,2"},
	{"MQ0", "2", "Float", "Fraction of reads with zero mapping quality for tiers 1,2"},
}

// filterDescriptions renders the ##FILTER descriptions with the configured
// thresholds interpolated.
func (w *Writer) filterDescriptions() map[FilterFlag]string {
	f := w.cfg.Filters
	ds := map[FilterFlag]string{
		FilterBCNoise: fmt.Sprintf("Average fraction of filtered basecalls within 50 bases of the indel exceeds %g", f.MaxWindowFilteredFrac),
		FilterQSIRef:  fmt.Sprintf("Normal sample is not homozygous ref or sindel Q-score < %d, ie calls with NT!=ref or QSI_NT < %d", f.MinQualityNTRef, f.MinQualityNTRef),
	}
	if f.MaxDepth > 0 {
		ds[FilterHighDepth] = fmt.Sprintf("Locus depth is greater than %d in the normal sample", f.MaxDepth)
	}
	if f.MaxRefRepeat > 0 {
		ds[FilterRepeat] = fmt.Sprintf("Sequence repeat of more than %dx in the reference sequence", f.MaxRefRepeat)
	}
	if f.MaxIndelHpol > 0 {
		ds[FilterIndelHpol] = fmt.Sprintf("Indel overlaps an interrupted homopolymer longer than %dx in the reference sequence", f.MaxIndelHpol)
	}
	return ds
}

// WriteHeader writes the VCF meta-header and the #CHROM column line with the
// configured sample names.
func (w *Writer) WriteHeader() error {
	var b strings.Builder
	b.Grow(4096)

	b.WriteString("##fileformat=VCFv4.1\n")
	b.WriteString("##source=strelka somatic indel caller\n")
	b.WriteString("##content=strelka somatic indel calls\n")

	for _, l := range infoLines {
		fmt.Fprintf(&b, "##INFO=<ID=%s,Number=%s,Type=%s,Description=\"%s\">\n",
			l.ID, l.Number, l.Type, l.Description)
	}
	for _, l := range formatLines {
		fmt.Fprintf(&b, "##FORMAT=<ID=%s,Number=%s,Type=%s,Description=\"%s\">\n",
			l.ID, l.Number, l.Type, l.Description)
	}

	descriptions := w.filterDescriptions()
	for f := FilterFlag(0); f < filterFlagCount; f++ {
		d, ok := descriptions[f]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "##FILTER=<ID=%s,Description=\"%s\">\n", f.Label(), d)
	}

	fmt.Fprintf(&b, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\t%s\t%s\n",
		w.cfg.NormalSample, w.cfg.TumorSample)

	if _, err := w.w.WriteString(b.String()); err != nil {
		return fmt.Errorf("write vcf header: %w", err)
	}
	return nil
}
