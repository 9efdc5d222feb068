// Package config defines the emission engine's configuration: output naming
// strings and site-filter thresholds. Values are loaded by the CLI through
// viper; the zero thresholds disable their filters.
package config

import "fmt"

// FilterConfig holds the site-filter thresholds.
type FilterConfig struct {
	// MaxDepth flags candidates whose tier-1 normal depth strictly exceeds
	// it. 0 means unlimited depth (filter disabled).
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	// MaxWindowFilteredFrac is the largest tolerated filtered-basecall
	// fraction in either sample's trailing window.
	MaxWindowFilteredFrac float64 `mapstructure:"max_window_filtered_frac" yaml:"max_window_filtered_frac"`

	// MinQualityNTRef is the lower bound on the NT-relative somatic
	// quality before a call is flagged low-confidence.
	MinQualityNTRef int `mapstructure:"min_quality_nt_ref" yaml:"min_quality_nt_ref"`

	// MaxRefRepeat flags short-unit tandem repeats whose reference repeat
	// count exceeds it. 0 disables the filter.
	MaxRefRepeat int `mapstructure:"max_ref_repeat" yaml:"max_ref_repeat"`

	// MaxIndelHpol flags calls inside homopolymers longer than it.
	// 0 disables the filter.
	MaxIndelHpol int `mapstructure:"max_indel_hpol" yaml:"max_indel_hpol"`
}

// Config holds the full engine configuration.
type Config struct {
	// Contig is the reference sequence name written to the CHROM column.
	Contig string `mapstructure:"contig" yaml:"contig"`

	// NormalSample and TumorSample name the two sample columns.
	NormalSample string `mapstructure:"normal_sample" yaml:"normal_sample"`
	TumorSample  string `mapstructure:"tumor_sample" yaml:"tumor_sample"`

	Filters FilterConfig `mapstructure:"filters" yaml:"filters"`
}

// Default returns the configuration with the standard filter thresholds.
func Default() Config {
	return Config{
		NormalSample: "NORMAL",
		TumorSample:  "TUMOR",
		Filters: FilterConfig{
			MaxWindowFilteredFrac: 0.3,
			MinQualityNTRef:       30,
			MaxRefRepeat:          8,
			MaxIndelHpol:          14,
		},
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Contig == "" {
		return fmt.Errorf("contig must be set")
	}
	if c.NormalSample == "" || c.TumorSample == "" {
		return fmt.Errorf("normal_sample and tumor_sample must be set")
	}
	if c.Filters.MaxWindowFilteredFrac < 0 || c.Filters.MaxWindowFilteredFrac > 1 {
		return fmt.Errorf("filters.max_window_filtered_frac must be in [0,1], got %g", c.Filters.MaxWindowFilteredFrac)
	}
	if c.Filters.MaxDepth < 0 {
		return fmt.Errorf("filters.max_depth must be >= 0, got %d", c.Filters.MaxDepth)
	}
	return nil
}
