// Package output renders annotated somatic indel candidates as VCF records.
// It owns the per-position candidate buffer, the site-filter evaluation, and
// the line formatter.
package output

import (
	"strings"

	"github.com/willf/bitset"

	"github.com/patriciabraguine/strelka/internal/config"
	"github.com/patriciabraguine/strelka/internal/somatic"
)

// FilterFlag identifies one site-level quality filter.
type FilterFlag uint

// Site filters, in FILTER column rendering order.
const (
	// FilterHighDepth marks sites whose tier-1 normal depth exceeds the
	// configured maximum.
	FilterHighDepth FilterFlag = iota

	// FilterBCNoise marks sites with too large a filtered-basecall
	// fraction in either sample's trailing window.
	FilterBCNoise

	// FilterQSIRef marks calls whose normal genotype is not reference or
	// whose NT-relative quality is below the configured bound.
	FilterQSIRef

	// FilterRepeat marks short-unit tandem repeats expanded beyond the
	// configured reference repeat count.
	FilterRepeat

	// FilterIndelHpol marks calls inside overlong homopolymers.
	FilterIndelHpol

	filterFlagCount
)

var filterFlagLabels = [...]string{"HighDepth", "BCNoise", "QSI_ref", "Repeat", "iHpol"}

// Label returns the FILTER column name of the flag.
func (f FilterFlag) Label() string {
	return filterFlagLabels[f]
}

// FilterSet is the set of filter flags accumulated for one candidate during
// formatting. Flags are only ever added, never removed.
type FilterSet struct {
	bits *bitset.BitSet
}

// NewFilterSet returns an empty filter set.
func NewFilterSet() FilterSet {
	return FilterSet{bits: bitset.New(uint(filterFlagCount))}
}

// Set adds a flag to the set.
func (s FilterSet) Set(f FilterFlag) {
	s.bits.Set(uint(f))
}

// Has reports whether a flag is set.
func (s FilterSet) Has(f FilterFlag) bool {
	return s.bits.Test(uint(f))
}

// Empty reports whether no flag is set.
func (s FilterSet) Empty() bool {
	return s.bits.None()
}

// String renders the set for the FILTER column: the set flag labels joined
// by ';', or "PASS" when empty.
func (s FilterSet) String() string {
	if s.Empty() {
		return "PASS"
	}
	var b strings.Builder
	for f := FilterFlag(0); f < filterFlagCount; f++ {
		if !s.Has(f) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(f.Label())
	}
	return b.String()
}

// windowFilteredFrac returns the filtered share of a sample's window,
// filt/(filt+used), or 0 when the window is empty.
func windowFilteredFrac(was somatic.WindowAverages) float64 {
	denom := was.Filtered + was.Used
	if denom <= 0 {
		return 0
	}
	return was.Filtered / denom
}

// EvaluateFilters applies the site filters to one candidate and returns the
// resulting flag set. It never mutates the candidate.
func EvaluateFilters(c *somatic.Candidate, wasNormal, wasTumor somatic.WindowAverages, cfg config.FilterConfig) FilterSet {
	flags := NewFilterSet()

	if cfg.MaxDepth > 0 && c.Normal[somatic.Tier1].Depth > cfg.MaxDepth {
		flags.Set(FilterHighDepth)
	}

	if windowFilteredFrac(wasNormal) >= cfg.MaxWindowFilteredFrac ||
		windowFilteredFrac(wasTumor) >= cfg.MaxWindowFilteredFrac {
		flags.Set(FilterBCNoise)
	}

	if c.Result.NormalGenotype != somatic.NTRef || c.Result.FromNTPhred < cfg.MinQualityNTRef {
		flags.Set(FilterQSIRef)
	}

	if cfg.MaxRefRepeat > 0 && c.Indel.HasRepeatUnit() &&
		len(c.Indel.RepeatUnit) <= 2 && c.Indel.RefRepeatCount > cfg.MaxRefRepeat {
		flags.Set(FilterRepeat)
	}

	if cfg.MaxIndelHpol > 0 && c.Indel.HomopolymerLength > cfg.MaxIndelHpol {
		flags.Set(FilterIndelHpol)
	}

	return flags
}
